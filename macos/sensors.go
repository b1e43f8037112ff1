package macos

import (
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v3/host"
)

// Sensor is one named temperature reading.
type Sensor struct {
	Key     string  `json:"key,omitempty"` // SMC key when known
	Name    string  `json:"name"`
	Celsius float64 `json:"celsius"`
}

// Sensors returns the HID sensors when the machine has any, and otherwise
// whatever gopsutil can read from the host.
func Sensors() ([]Sensor, error) {
	sensors, err := HIDSensors()
	if err == nil && len(sensors) > 0 {
		return sensors, nil
	}
	if err != nil {
		log.Printf("HID sensors unavailable, falling back to host sensors: %v", err)
	}
	return HostSensors()
}

// HostSensors reads temperatures through gopsutil and labels the ones whose
// key is in the SMC label table.
func HostSensors() ([]Sensor, error) {
	temps, err := host.SensorsTemperatures()
	if err != nil && len(temps) == 0 {
		return nil, fmt.Errorf("failed to get host sensors: %w", err)
	}
	if err != nil {
		// partial results come back together with warnings
		log.Printf("host sensors: %v", err)
	}
	return hostSensors(temps), nil
}

func hostSensors(temps []host.TemperatureStat) []Sensor {
	sensors := make([]Sensor, 0, len(temps))
	for _, t := range temps {
		// 0-value sensors are not implemented
		if t.Temperature == 0 {
			continue
		}
		s := Sensor{Key: t.SensorKey, Name: t.SensorKey, Celsius: t.Temperature}
		if label := Label(t.SensorKey); label != "" {
			s.Name = label
		}
		sensors = append(sensors, s)
	}
	sort.SliceStable(sensors, func(i, j int) bool { return sensors[i].Name < sensors[j].Name })
	return sensors
}

// parseHIDList reads the "product\tcelsius" lines built by the HID helper.
func parseHIDList(list string) ([]Sensor, error) {
	var sensors []Sensor
	for _, line := range strings.Split(list, "\n") {
		if line == "" {
			continue
		}
		name, value, ok := strings.Cut(line, "\t")
		if !ok {
			return nil, fmt.Errorf("invalid HID sensor line %q", line)
		}
		celsius, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse temperature of %q: %w", name, err)
		}
		// Only keep valid temperatures (not 0 and reasonable range)
		if celsius <= 0 || celsius >= 150 {
			continue
		}
		sensors = append(sensors, Sensor{Name: name, Celsius: celsius})
	}
	return sensors, nil
}
