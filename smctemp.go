// main - smctemp prints temperatures and fan speeds read from the Apple SMC
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"artifactdev/smctemp/config"
	"artifactdev/smctemp/macos"
	"artifactdev/smctemp/publisher"
	"artifactdev/smctemp/smc"
)

func init() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.SetPrefix("smctemp: ")
}

// Exit codes
const (
	ExitOK          = 0
	ExitUnavailable = 1
	ExitUsage       = 2
)

// openSMC connects to the controller. Tests replace it.
var openSMC = smc.Open

// readingPublisher receives every reading that is printed.
type readingPublisher interface {
	Publish(name, payload string) error
	Close()
}

// Application holds the state of one run
type Application struct {
	config  *config.Config
	opts    options
	conn    *smc.Conn
	out     io.Writer
	pub     readingPublisher
	sensors func() ([]macos.Sensor, error)
}

// NewApplication creates an Application. conn may be nil when the selected
// options read no SMC keys.
func NewApplication(cfg *config.Config, opts options, conn *smc.Conn, out io.Writer) *Application {
	return &Application{
		config:  cfg,
		opts:    opts,
		conn:    conn,
		out:     out,
		sensors: macos.Sensors,
	}
}

func (app *Application) fahrenheit() bool {
	if app.opts.fahrenheit {
		return true
	}
	if app.opts.celsius {
		return false
	}
	return app.config.Scale == "F"
}

func (app *Application) unit() string {
	if app.opts.hideUnits || !app.config.Units() {
		return ""
	}
	if app.fahrenheit() {
		return " °F"
	}
	return " °C"
}

func (app *Application) scale(celsius float64) float64 {
	if app.fahrenheit() {
		return convert(celsius)
	}
	return celsius
}

// convert turns degrees Celsius into degrees Fahrenheit.
func convert(celsius float64) float64 {
	return celsius*9/5 + 32
}

// key resolves the register for a sensor: the flag's key, then the config's.
func key(flagKey, configKey string) (smc.Key, error) {
	if flagKey != "" {
		return smc.ParseKey(flagKey)
	}
	return smc.ParseKey(configKey)
}

func (app *Application) publish(name, payload string) {
	if app.pub == nil {
		return
	}
	if err := app.pub.Publish(name, payload); err != nil {
		log.Printf("Failed to publish %s: %v", name, err)
	}
}

// printTemperature prints one "<title><value><unit>" line, or "<title>n/a"
// when the key cannot be read.
func (app *Application) printTemperature(title string, k smc.Key, name string) {
	celsius, err := app.conn.Temperature(k)
	if err != nil {
		log.Printf("Failed to read %s: %v", k, err)
		fmt.Fprintf(app.out, "%sn/a\n", title)
		return
	}
	value := app.scale(celsius)
	fmt.Fprintf(app.out, "%s%.1f%s\n", title, value, app.unit())
	app.publish(name, fmt.Sprintf("%.1f", value))
}

func (app *Application) printFans() {
	n, err := app.conn.FanCount()
	if err != nil {
		log.Printf("Failed to read fan count: %v", err)
		fmt.Fprintln(app.out, "Num fans: n/a")
		return
	}
	fmt.Fprintf(app.out, "Num fans: %d\n", n)
	app.publish("fans", fmt.Sprintf("%d", n))

	for i := 0; i < n; i++ {
		fan, err := app.conn.Fan(i)
		if err != nil {
			log.Printf("Failed to read fan %d: %v", i, err)
			fmt.Fprintf(app.out, "Fan %d - n/a\n", i)
			continue
		}
		name := fan.Name
		if name == "" {
			name = fmt.Sprintf("F%d", i)
		}
		pct := "n/a"
		if p, err := fan.Percent(); err == nil {
			pct = fmt.Sprintf("%.0f%%", p)
			app.publish(fmt.Sprintf("fan%d/percent", i), fmt.Sprintf("%.0f", p))
		}
		fmt.Fprintf(app.out, "Fan %d - %s at %.0f RPM (%s)\n", i, name, fan.Actual, pct)
		app.publish(fmt.Sprintf("fan%d/rpm", i), fmt.Sprintf("%.0f", fan.Actual))
	}
}

// printRaw prints "KEY = VALUE". Flags also show their bytes.
func (app *Application) printRaw(k smc.Key) {
	v, err := app.conn.Read(k)
	if err != nil {
		log.Printf("Failed to read %s: %v", k, err)
		fmt.Fprintf(app.out, "%s = n/a\n", k)
		return
	}
	value := v.String()
	if v.Kind() == smc.KindFlags {
		value += " (" + v.Hex() + ")"
	}
	fmt.Fprintf(app.out, "%s = %s\n", k, value)
	app.publish("raw/"+k.String(), v.String())
}

// printAllKeys prints the key count, then one line per key. The count is
// read once and drives the walk.
func (app *Application) printAllKeys() {
	total, err := app.conn.KeyCount()
	if err != nil {
		log.Printf("Failed to read key count: %v", err)
		fmt.Fprintln(app.out, "Total keys = n/a")
		return
	}
	fmt.Fprintf(app.out, "Total keys = %d\n", total)

	app.conn.Walk(total, func(i uint32, k smc.Key, v smc.Value, err error) {
		if err != nil {
			log.Printf("Failed to read key #%d: %v", i, err)
			if k == 0 {
				fmt.Fprintf(app.out, "key #%d = n/a\n", i)
			} else {
				fmt.Fprintf(app.out, "key = %s value = n/a\n", k)
			}
			return
		}
		line := fmt.Sprintf("key = %s type = %s value = %s", k, v.DataType, v)
		if label := macos.Label(k.String()); label != "" {
			line += " (" + label + ")"
		}
		fmt.Fprintln(app.out, line)
	})
}

func (app *Application) printSensors() {
	sensors, err := app.sensors()
	if err != nil {
		log.Printf("Failed to list sensors: %v", err)
		fmt.Fprintln(app.out, "Sensors: n/a")
		return
	}
	for _, s := range sensors {
		value := app.scale(s.Celsius)
		fmt.Fprintf(app.out, "%s: %.1f%s\n", s.Name, value, app.unit())
		app.publish("sensors/"+s.Name, fmt.Sprintf("%.1f", value))
	}
}

// Run prints everything the options ask for, in a fixed order: CPU, GPU,
// ambient, fans, -t, -r, -A, then host sensors. Individual read failures are
// reported inline and do not fail the run.
func (app *Application) Run() error {
	titled := app.opts.sensorCount() > 1
	title := func(s string) string {
		if titled {
			return s
		}
		return ""
	}
	blocks := []struct {
		on      bool
		title   string
		flagKey string
		cfgKey  string
		name    string
	}{
		{app.opts.cpu.set, "CPU: ", app.opts.cpu.key, app.config.CPUKey, "cpu"},
		{app.opts.gpu.set, "GPU: ", app.opts.gpu.key, app.config.GPUKey, "gpu"},
		{app.opts.ambient, "Ambient: ", "", app.config.AmbientKey, "ambient"},
	}
	for _, b := range blocks {
		if !b.on {
			continue
		}
		k, err := key(b.flagKey, b.cfgKey)
		if err != nil {
			return err
		}
		app.printTemperature(title(b.title), k, b.name)
	}
	if app.opts.fans {
		app.printFans()
	}

	if app.opts.tempKey != "" {
		k, err := smc.ParseKey(app.opts.tempKey)
		if err != nil {
			return err
		}
		app.printTemperature(k.String()+" = ", k, "temperature/"+k.String())
	}
	if app.opts.rawKey != "" {
		k, err := smc.ParseKey(app.opts.rawKey)
		if err != nil {
			return err
		}
		app.printRaw(k)
	}
	if app.opts.all {
		app.printAllKeys()
	}

	if app.opts.sensors {
		app.printSensors()
	}
	return nil
}

func hostname(cfg *config.Config) string {
	if cfg.Hostname != "" {
		return macos.SanitizeHostname(cfg.Hostname)
	}
	return macos.GetHostname()
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseOptions(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return ExitOK
	}
	if err != nil {
		fmt.Fprintf(stderr, "smctemp: %v\n", err)
		return ExitUsage
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "smctemp: %v\n", err)
		return ExitUsage
	}

	var conn *smc.Conn
	if opts.needsSMC() {
		conn, err = openSMC()
		if err != nil {
			log.Printf("Failed to open SMC: %v", err)
			return ExitUnavailable
		}
		defer conn.Close()
	}

	app := NewApplication(cfg, opts, conn, stdout)

	if opts.publish {
		pub, err := publisher.Connect(cfg, hostname(cfg))
		if err != nil {
			log.Printf("MQTT publishing disabled: %v", err)
			return ExitUnavailable
		}
		defer pub.Close()
		app.pub = pub
	}

	// Run only fails on a malformed key, which is a usage error.
	if err := app.Run(); err != nil {
		fmt.Fprintf(stderr, "smctemp: %v\n", err)
		return ExitUsage
	}
	return ExitOK
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
