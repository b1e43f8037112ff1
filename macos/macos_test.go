package macos

import (
	"testing"

	"github.com/shirou/gopsutil/v3/host"
)

func TestLabelTable(t *testing.T) {
	got, err := loadLabels(smcData)
	if err != nil {
		t.Fatalf("embedded table invalid: %v", err)
	}
	if len(got) == 0 {
		t.Fatal("embedded table is empty")
	}
	if Label("TC0P") != "CPU Proximity" {
		t.Errorf("Label(TC0P) = %q", Label("TC0P"))
	}
	if Label("ZZZZ") != "" {
		t.Errorf("Label(ZZZZ) = %q, want empty", Label("ZZZZ"))
	}
}

func TestLoadLabelsRejects(t *testing.T) {
	for _, data := range []string{"TC0P\n", "TC0\tCPU\n", "TC0P\tCPU\textra\n"} {
		if _, err := loadLabels([]byte(data)); err == nil {
			t.Errorf("loadLabels(%q) expected error", data)
		}
	}
}

func TestParseHIDList(t *testing.T) {
	sensors, err := parseHIDList("PMU tdie1\t45.50\nPMU tdev3\t0.00\nGPU MTR Temp Sensor1\t38.25\n")
	if err != nil {
		t.Fatalf("parseHIDList err=%v", err)
	}
	if len(sensors) != 2 {
		t.Fatalf("expected 2 sensors, got %d: %+v", len(sensors), sensors)
	}
	if sensors[0].Name != "PMU tdie1" || sensors[0].Celsius != 45.5 {
		t.Errorf("sensor 0 = %+v", sensors[0])
	}
	if _, err := parseHIDList("no tab here\n"); err == nil {
		t.Error("expected error for malformed line")
	}
	if _, err := parseHIDList("name\tabc\n"); err == nil {
		t.Error("expected error for bad number")
	}
}

func TestHostSensorsLabelsAndSkipsZero(t *testing.T) {
	got := hostSensors([]host.TemperatureStat{
		{SensorKey: "TG0P", Temperature: 40},
		{SensorKey: "TC0P", Temperature: 50},
		{SensorKey: "TX9Z", Temperature: 30},
		{SensorKey: "TA0P", Temperature: 0},
	})
	if len(got) != 3 {
		t.Fatalf("expected 3 sensors, got %+v", got)
	}
	if got[0].Name != "CPU Proximity" || got[0].Key != "TC0P" {
		t.Errorf("first = %+v", got[0])
	}
	if got[2].Name != "TX9Z" {
		t.Errorf("unlabelled sensor should keep its key as name, got %+v", got[2])
	}
}

func TestSanitizeHostname(t *testing.T) {
	tests := map[string]string{
		"studio.local":   "studio",
		"Bob's MacBook":  "BobsMacBook",
		"mini-2_a.lan":   "mini-2_a",
		"!!!":            "localhost",
	}
	for in, want := range tests {
		if got := SanitizeHostname(in); got != want {
			t.Errorf("SanitizeHostname(%q) = %q, want %q", in, got, want)
		}
	}
}
