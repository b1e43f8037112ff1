package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"

	"artifactdev/smctemp/smc"
)

// keyFlag is a boolean flag that may carry a key: "-c" or "-c=TC0D".
// The flag package hands a bare "-c" to Set as "true", so that spelling is
// the one key that cannot be selected.
type keyFlag struct {
	set bool
	key string
}

func (f *keyFlag) String() string { return f.key }

func (f *keyFlag) Set(s string) error {
	if s == "true" {
		f.set = true
		return nil
	}
	if _, err := smc.ParseKey(s); err == nil {
		f.set = true
		f.key = s
		return nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return fmt.Errorf("%q is neither a 4 character key nor a boolean", s)
	}
	f.set = b
	if !b {
		f.key = ""
	}
	return nil
}

func (f *keyFlag) IsBoolFlag() bool { return true }

type options struct {
	celsius    bool
	fahrenheit bool
	hideUnits  bool
	cpu        keyFlag
	gpu        keyFlag
	ambient    bool
	fans       bool
	tempKey    string
	rawKey     string
	all        bool
	sensors    bool
	publish    bool
	configPath string
}

// sensorCount counts the titled sensor blocks that were asked for.
func (o *options) sensorCount() int {
	n := 0
	for _, b := range []bool{o.cpu.set, o.gpu.set, o.ambient, o.fans} {
		if b {
			n++
		}
	}
	return n
}

// needsSMC reports whether any selected output reads SMC keys.
func (o *options) needsSMC() bool {
	return o.sensorCount() > 0 || o.tempKey != "" || o.rawKey != "" || o.all
}

func parseOptions(args []string, stderr io.Writer) (options, error) {
	var o options

	fs := flag.NewFlagSet("smctemp", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&o.celsius, "C", false, "print temperatures in Celsius (default)")
	fs.BoolVar(&o.fahrenheit, "F", false, "print temperatures in Fahrenheit")
	fs.BoolVar(&o.hideUnits, "T", false, "do not print temperature units")
	fs.Var(&o.cpu, "c", "print CPU temperature, optionally from `KEY` given as -c=KEY")
	fs.Var(&o.gpu, "g", "print GPU temperature, optionally from `KEY` given as -g=KEY")
	fs.BoolVar(&o.ambient, "a", false, "print ambient temperature")
	fs.BoolVar(&o.fans, "f", false, "print fan speeds")
	fs.StringVar(&o.tempKey, "t", "", "print the temperature held by `KEY`")
	fs.StringVar(&o.rawKey, "r", "", "print the raw value of `KEY`")
	fs.BoolVar(&o.all, "A", false, "print every key with its type and value")
	fs.BoolVar(&o.sensors, "s", false, "list host temperature sensors")
	fs.BoolVar(&o.publish, "m", false, "publish readings to the configured MQTT broker")
	fs.StringVar(&o.configPath, "config", "", "read configuration from `PATH`")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: smctemp [-C|-F] [-T] [-c[=KEY]] [-g[=KEY]] [-a] [-f] [-t KEY] [-r KEY] [-A] [-s] [-m] [-config PATH]")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if fs.NArg() > 0 {
		if _, err := smc.ParseKey(fs.Arg(0)); err == nil {
			return o, fmt.Errorf("unexpected argument %q (give keys as -c=KEY or -g=KEY)", fs.Arg(0))
		}
		return o, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}
	if o.celsius && o.fahrenheit {
		return o, errors.New("-C and -F are mutually exclusive")
	}
	for name, key := range map[string]string{"-t": o.tempKey, "-r": o.rawKey} {
		if key == "" {
			continue
		}
		if _, err := smc.ParseKey(key); err != nil {
			return o, fmt.Errorf("%s: %w", name, err)
		}
	}

	if o.sensorCount() == 0 && o.tempKey == "" && o.rawKey == "" && !o.all && !o.sensors {
		o.cpu.set = true
	}
	return o, nil
}
