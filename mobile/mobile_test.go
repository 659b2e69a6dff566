package mobile

import (
	"encoding/json"
	"testing"
)

func TestStartStop(t *testing.T) {
	if IsRunning() {
		t.Fatal("running before Start")
	}
	if got := GetStatus(); got != `{"running":false}` {
		t.Errorf("GetStatus before Start = %s", got)
	}

	cfg := "api:\n  port: 0\nwallet:\n  connect_delay: 1ms\n"
	if err := Start(cfg, t.TempDir()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer Stop()

	if err := Start(cfg, t.TempDir()); err == nil {
		t.Error("second Start should fail")
	}
	if !IsRunning() || GetAPIPort() == 0 {
		t.Errorf("running=%v port=%d", IsRunning(), GetAPIPort())
	}

	var status map[string]interface{}
	if err := json.Unmarshal([]byte(GetStatus()), &status); err != nil {
		t.Fatalf("status JSON: %v", err)
	}
	if status["running"] != true || status["wallet_mode"] != "simulated" {
		t.Errorf("status = %v", status)
	}

	var dash map[string]interface{}
	if err := json.Unmarshal([]byte(GetDashboard()), &dash); err != nil {
		t.Fatalf("dashboard JSON: %v", err)
	}
	if dash["title"] != "Game Asset Control Room" {
		t.Errorf("dashboard title = %v", dash["title"])
	}

	Stop()
	if IsRunning() || GetAPIPort() != 0 {
		t.Error("still running after Stop")
	}
}

func TestGetVersion(t *testing.T) {
	if GetVersion() == "" {
		t.Error("empty version")
	}
}
