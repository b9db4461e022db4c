package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/talgya/task-tycoon/internal/economy"
)

// Difficulty presets.
const (
	PresetStandard = "standard"
	PresetCasual   = "casual"
	PresetHard     = "hard"
)

// Preset returns the balance tables for a difficulty.
func Preset(name string) (economy.Tables, error) {
	switch name {
	case PresetStandard, "":
		return economy.DefaultTables(), nil
	case PresetCasual:
		return Casual(), nil
	case PresetHard:
		return Hard(), nil
	}
	return economy.Tables{}, fmt.Errorf("unknown difficulty %q", name)
}

// Casual returns a gentler economy: cheaper overhead, a calmer market,
// and a softer landing when cash runs out.
func Casual() economy.Tables {
	t := economy.DefaultTables()
	for k, v := range t.BaseDailyCosts {
		t.BaseDailyCosts[k] = v * 0.75
	}
	t.MarketAmplitude = 0.1
	t.BankruptcyReputation = 2
	t.EnergyRestoreRate = 0.4
	return t
}

// Hard returns a harsher economy for experienced players.
func Hard() economy.Tables {
	t := economy.DefaultTables()
	t.MarketAmplitude = 0.3
	t.HiringScarcity = 0.15
	t.BankruptcyFloor = -500
	t.BankruptcyReputation = 10
	t.DailyEventChance = 0.15
	return t
}

// LoadBalance applies the YAML file at path on top of base. Scalars replace
// the base value; entries under departments, tasks, and employee_types are
// merged field by field, so an override only names what it changes.
func LoadBalance(path string, base economy.Tables) (economy.Tables, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return economy.Tables{}, fmt.Errorf("read balance: %w", err)
	}
	t, err := ParseBalance(b, base)
	if err != nil {
		return economy.Tables{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// ParseBalance applies YAML overrides to base. base is not modified.
func ParseBalance(data []byte, base economy.Tables) (economy.Tables, error) {
	t := cloneTables(base)

	var entries struct {
		Departments   map[string]yaml.Node `yaml:"departments"`
		Tasks         map[string]yaml.Node `yaml:"tasks"`
		EmployeeTypes map[string]yaml.Node `yaml:"employee_types"`
	}
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return economy.Tables{}, fmt.Errorf("parse balance: %w", err)
	}

	// Scalars first. The map sections are decoded again below so that
	// partial entries keep their base values.
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil && !errors.Is(err, io.EOF) {
		return economy.Tables{}, fmt.Errorf("parse balance: %w", err)
	}

	// Department names may be written short ("sales") or as state keys
	// ("salesLevel"); entries are stored under the state key.
	for name, node := range entries.Departments {
		key, ok := economy.ParseDepartment(name)
		if !ok {
			return economy.Tables{}, fmt.Errorf("departments.%s: unknown department", name)
		}
		delete(t.Departments, name)
		entry := base.Departments[key]
		if err := node.Decode(&entry); err != nil {
			return economy.Tables{}, fmt.Errorf("departments.%s: %w", name, err)
		}
		t.Departments[key] = entry
	}
	for name, node := range entries.Tasks {
		entry := base.Tasks[name]
		if err := node.Decode(&entry); err != nil {
			return economy.Tables{}, fmt.Errorf("tasks.%s: %w", name, err)
		}
		if key, ok := economy.ParseDepartment(entry.Department); ok {
			entry.Department = key
		}
		t.Tasks[name] = entry
	}
	for name, node := range entries.EmployeeTypes {
		entry := base.EmployeeTypes[name]
		entry.Skills = append([]string(nil), entry.Skills...)
		if err := node.Decode(&entry); err != nil {
			return economy.Tables{}, fmt.Errorf("employee_types.%s: %w", name, err)
		}
		if key, ok := economy.ParseDepartment(entry.Department); ok {
			entry.Department = key
		}
		t.EmployeeTypes[name] = entry
	}

	if err := Validate(t); err != nil {
		return economy.Tables{}, err
	}
	return t, nil
}

// Validate rejects tables the engine cannot run with.
func Validate(t economy.Tables) error {
	var errs []error
	if t.MarketPeriod <= 0 {
		errs = append(errs, errors.New("market_period must be positive"))
	}
	if t.UpgradeScaling <= 0 {
		errs = append(errs, errors.New("upgrade_scaling must be positive"))
	}
	if t.CandidateMin < 1 || t.CandidateMax < t.CandidateMin {
		errs = append(errs, errors.New("candidate_min must be at least 1 and at most candidate_max"))
	}
	if t.TrainingGainMax < t.TrainingGainMin {
		errs = append(errs, errors.New("training_gain_max is below training_gain_min"))
	}
	if _, ok := t.EmployeeTypes[economy.DefaultEmployeeType]; !ok {
		errs = append(errs, fmt.Errorf("employee_types must define %q", economy.DefaultEmployeeType))
	}
	for name := range t.Departments {
		if key, ok := economy.ParseDepartment(name); !ok || key != name {
			errs = append(errs, fmt.Errorf("departments.%s: unknown department", name))
		}
	}
	for name, task := range t.Tasks {
		if task.EnergyCost < 0 {
			errs = append(errs, fmt.Errorf("tasks.%s: energy_cost is negative", name))
		}
		if _, ok := t.Departments[task.Department]; !ok {
			errs = append(errs, fmt.Errorf("tasks.%s: unknown department %q", name, task.Department))
		}
	}
	for name, et := range t.EmployeeTypes {
		if _, ok := t.Departments[et.Department]; et.Department != "" && !ok {
			errs = append(errs, fmt.Errorf("employee_types.%s: unknown department %q", name, et.Department))
		}
		if et.SalaryMax < et.SalaryMin {
			errs = append(errs, fmt.Errorf("employee_types.%s: salary_max is below salary_min", name))
		}
		if et.MaxSkills < et.MinSkills {
			errs = append(errs, fmt.Errorf("employee_types.%s: max_skills is below min_skills", name))
		}
	}
	return errors.Join(errs...)
}

// cloneTables copies the maps and slices of t so overrides cannot leak
// into the caller's tables.
func cloneTables(t economy.Tables) economy.Tables {
	c := t
	c.BaseDailyCosts = make(map[string]float64, len(t.BaseDailyCosts))
	for k, v := range t.BaseDailyCosts {
		c.BaseDailyCosts[k] = v
	}
	c.Departments = make(map[string]economy.DepartmentCost, len(t.Departments))
	for k, v := range t.Departments {
		c.Departments[k] = v
	}
	c.Tasks = make(map[string]economy.TaskConfig, len(t.Tasks))
	for k, v := range t.Tasks {
		c.Tasks[k] = v
	}
	c.EmployeeTypes = make(map[string]economy.EmployeeType, len(t.EmployeeTypes))
	for k, v := range t.EmployeeTypes {
		v.Skills = append([]string(nil), v.Skills...)
		c.EmployeeTypes[k] = v
	}
	c.TrainingSkills = append([]string(nil), t.TrainingSkills...)
	return c
}
