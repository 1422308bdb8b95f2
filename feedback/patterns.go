package feedback

import "github.com/wippyai/haptics-runtime/ahap"

// ImpactStyle selects the weight of an impact trigger.
type ImpactStyle int32

const (
	ImpactLight ImpactStyle = iota
	ImpactMedium
	ImpactHeavy
	ImpactSoft
	ImpactRigid
)

// NotificationKind selects the shape of a notification trigger.
type NotificationKind int32

const (
	NotificationSuccess NotificationKind = iota
	NotificationWarning
	NotificationError
)

func mustBuild(events ...ahap.Event) *ahap.Pattern {
	p, err := ahap.Build(events, nil, nil)
	if err != nil {
		panic("feedback: invalid builtin pattern: " + err.Error())
	}
	return p
}

// Built-in patterns. Impacts are single transients; notifications are
// short transient sequences; selection is a faint tick.
var (
	impactPatterns = map[ImpactStyle]*ahap.Pattern{
		ImpactLight:  mustBuild(ahap.Transient(0, 0.4, 0.3)),
		ImpactMedium: mustBuild(ahap.Transient(0, 0.7, 0.5)),
		ImpactHeavy:  mustBuild(ahap.Transient(0, 1.0, 0.7)),
		ImpactSoft:   mustBuild(ahap.Transient(0, 0.6, 0.15)),
		ImpactRigid:  mustBuild(ahap.Transient(0, 0.8, 0.9)),
	}

	notificationPatterns = map[NotificationKind]*ahap.Pattern{
		NotificationSuccess: mustBuild(
			ahap.Transient(0, 0.6, 0.4),
			ahap.Transient(0.12, 1.0, 0.6),
		),
		NotificationWarning: mustBuild(
			ahap.Transient(0, 1.0, 0.5),
			ahap.Transient(0.12, 0.6, 0.4),
		),
		NotificationError: mustBuild(
			ahap.Transient(0, 1.0, 0.6),
			ahap.Transient(0.1, 0.8, 0.6),
			ahap.Transient(0.2, 1.0, 0.7),
		),
	}

	selectionPattern = mustBuild(ahap.Transient(0, 0.35, 0.65))
)

// ImpactPattern returns the built-in pattern behind an impact trigger,
// for callers that play builtins on their own engine. Unknown styles
// fall back to medium.
func ImpactPattern(style ImpactStyle) *ahap.Pattern {
	if p, found := impactPatterns[style]; found {
		return p
	}
	return impactPatterns[ImpactMedium]
}

// NotificationPattern returns the built-in pattern behind a
// notification trigger. Unknown kinds fall back to success.
func NotificationPattern(kind NotificationKind) *ahap.Pattern {
	if p, found := notificationPatterns[kind]; found {
		return p
	}
	return notificationPatterns[NotificationSuccess]
}

// SelectionPattern returns the built-in selection tick.
func SelectionPattern() *ahap.Pattern {
	return selectionPattern
}
