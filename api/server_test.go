package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/wippyai/haptics-runtime/bridge"
	"github.com/wippyai/haptics-runtime/device"
	"github.com/wippyai/haptics-runtime/errors"
	"github.com/wippyai/haptics-runtime/feedback"
)

func feedbackSetDevice(t *testing.T, d device.Device) {
	t.Helper()
	feedback.SetDevice(d)
	t.Cleanup(func() { feedback.SetDevice(nil) })
}

const tapAHAP = `{
  "Version": 1.0,
  "Pattern": [
    {"Event": {"Time": 0.0, "EventType": "HapticContinuous", "EventDuration": 0.05,
      "EventParameters": [
        {"ParameterID": "HapticIntensity", "ParameterValue": 0.7}]}}
  ]
}`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	b := bridge.New(bridge.WithDeviceFactory(func() device.Device {
		return device.NewSim()
	}))
	srv, err := NewServer(b)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, isRaw := body.(string); isRaw {
			buf.WriteString(raw)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	resp := map[string]any{}
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response %q: %v", w.Body.String(), err)
		}
	}
	return w, resp
}

func TestHealth(t *testing.T) {
	r := newTestServer(t).Router()
	w, resp := doJSON(t, r, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if resp["status"] != "healthy" {
		t.Errorf("body = %v", resp)
	}
}

func TestCapabilities(t *testing.T) {
	r := newTestServer(t).Router()
	w, resp := doJSON(t, r, http.MethodGet, "/api/v1/capabilities", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if resp["supports_haptics"] != true {
		t.Errorf("body = %v", resp)
	}
}

func TestPatternAndPlayerLifecycle(t *testing.T) {
	r := newTestServer(t).Router()

	w, resp := doJSON(t, r, http.MethodPost, "/api/v1/patterns", tapAHAP)
	if w.Code != http.StatusCreated {
		t.Fatalf("create pattern: %d %v", w.Code, resp)
	}
	patID := int(resp["pattern"].(float64))

	w, resp = doJSON(t, r, http.MethodPost, "/api/v1/players", map[string]any{"pattern": patID})
	if w.Code != http.StatusCreated {
		t.Fatalf("create player: %d %v", w.Code, resp)
	}
	plID := int(resp["player"].(float64))

	plPath := fmt.Sprintf("/api/v1/players/%d", plID)
	if w, resp = doJSON(t, r, http.MethodPost, plPath+"/play", nil); w.Code != http.StatusOK {
		t.Fatalf("play: %d %v", w.Code, resp)
	}
	if w, resp = doJSON(t, r, http.MethodPost, plPath+"/stop", nil); w.Code != http.StatusOK {
		t.Fatalf("stop: %d %v", w.Code, resp)
	}
	if w, resp = doJSON(t, r, http.MethodPost, plPath+"/loop", map[string]any{"enabled": true}); w.Code != http.StatusOK {
		t.Fatalf("loop: %d %v", w.Code, resp)
	}
	if w, resp = doJSON(t, r, http.MethodPost, plPath+"/parameter", map[string]any{"id": 0, "value": 0.5}); w.Code != http.StatusOK {
		t.Fatalf("parameter: %d %v", w.Code, resp)
	}

	if w, _ = doJSON(t, r, http.MethodDelete, plPath, nil); w.Code != http.StatusNoContent {
		t.Fatalf("delete player: %d", w.Code)
	}
	if w, _ = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/v1/patterns/%d", patID), nil); w.Code != http.StatusNoContent {
		t.Fatalf("delete pattern: %d", w.Code)
	}

	// Deleted ids are gone.
	w, resp = doJSON(t, r, http.MethodPost, plPath+"/play", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("play deleted player: %d %v", w.Code, resp)
	}
	if code := int(resp["code"].(float64)); code != int(errors.CodeInvalidHandle) {
		t.Errorf("code = %d, want %d", code, errors.CodeInvalidHandle)
	}
}

func TestCreatePatternRejectsBadData(t *testing.T) {
	r := newTestServer(t).Router()
	w, resp := doJSON(t, r, http.MethodPost, "/api/v1/patterns", `{"Pattern": []}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d %v", w.Code, resp)
	}
	if code := int(resp["code"].(float64)); code != int(errors.CodeDecode) {
		t.Errorf("code = %d, want %d", code, errors.CodeDecode)
	}
}

func TestFeedbackEndpoint(t *testing.T) {
	sim := device.NewSim()
	feedbackSetDevice(t, sim)

	r := newTestServer(t).Router()

	cases := []struct {
		name string
		body map[string]any
		want int
	}{
		{"impact", map[string]any{"type": "impact", "style": "heavy"}, http.StatusAccepted},
		{"notification", map[string]any{"type": "notification", "kind": "success"}, http.StatusAccepted},
		{"selection", map[string]any{"type": "selection"}, http.StatusAccepted},
		{"unknown type", map[string]any{"type": "rumble"}, http.StatusBadRequest},
		{"unknown style", map[string]any{"type": "impact", "style": "gigantic"}, http.StatusBadRequest},
		{"missing type", map[string]any{}, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, resp := doJSON(t, r, http.MethodPost, "/api/v1/feedback", tc.body)
			if w.Code != tc.want {
				t.Fatalf("status = %d, want %d (%v)", w.Code, tc.want, resp)
			}
		})
	}
}

func TestBadIDs(t *testing.T) {
	r := newTestServer(t).Router()

	w, _ := doJSON(t, r, http.MethodPost, "/api/v1/players/abc/play", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("non-numeric id: %d", w.Code)
	}
	w, _ = doJSON(t, r, http.MethodDelete, "/api/v1/patterns/9999", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown pattern id: %d", w.Code)
	}
}
