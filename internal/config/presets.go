package config

var Presets = map[string]map[string]*Config{
	"first_order": {
		"conservative": {
			Plant: "first_order", Integrator: "rk4", SampleTime: 0.01, Duration: 20.0, Setpoint: 1.0,
			Gains:  GainsConfig{Kp: 1.0, Ki: 0.5, Kd: 0.0, Tf: 0.05},
			Limits: LimitConfig{OutMin: -5, OutMax: 5, IntegralMin: -5, IntegralMax: 5},
		},
		"aggressive": {
			Plant: "first_order", Integrator: "rk4", SampleTime: 0.01, Duration: 10.0, Setpoint: 1.0,
			Gains:  GainsConfig{Kp: 8.0, Ki: 4.0, Kd: 0.2, Tf: 0.02},
			Limits: LimitConfig{OutMin: -50, OutMax: 50, IntegralMin: -20, IntegralMax: 20},
		},
	},
	"spring_mass": {
		"damped": {
			Plant: "spring_mass", Integrator: "rk4", SampleTime: 0.005, Duration: 20.0, Setpoint: 0.5,
			Gains:  GainsConfig{Kp: 40.0, Ki: 10.0, Kd: 8.0, Tf: 0.02},
			Limits: LimitConfig{OutMin: -50, OutMax: 50, IntegralMin: -25, IntegralMax: 25},
		},
		"gentle": {
			Plant: "spring_mass", Integrator: "rk4", SampleTime: 0.01, Duration: 30.0, Setpoint: 0.5,
			Gains:  GainsConfig{Kp: 15.0, Ki: 3.0, Kd: 4.0, Tf: 0.05},
			Limits: LimitConfig{OutMin: -20, OutMax: 20, IntegralMin: -10, IntegralMax: 10},
		},
	},
	"motor": {
		"speed": {
			Plant: "motor", Integrator: "rk4", SampleTime: 0.001, Duration: 5.0, Setpoint: 100.0,
			Gains:  GainsConfig{Kp: 0.5, Ki: 2.0, Kd: 0.001, Tf: 0.005},
			Limits: LimitConfig{OutMin: -12, OutMax: 12, IntegralMin: -12, IntegralMax: 12},
		},
		"loaded": {
			Plant: "motor", Integrator: "rk4", SampleTime: 0.001, Duration: 10.0, Setpoint: 50.0,
			Gains:  GainsConfig{Kp: 0.8, Ki: 3.0, Kd: 0.002, Tf: 0.005},
			Limits: LimitConfig{OutMin: -12, OutMax: 12, IntegralMin: -12, IntegralMax: 12},
		},
	},
}

func GetPreset(plant, preset string) *Config {
	plantPresets, ok := Presets[plant]
	if !ok {
		return nil
	}
	cfg, ok := plantPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(plant string) []string {
	plantPresets, ok := Presets[plant]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(plantPresets))
	for name := range plantPresets {
		names = append(names, name)
	}
	return names
}
