// Package cmd implements the paybudget command tree.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/paycheck/budget-planner/internal/calculation"
	"github.com/paycheck/budget-planner/internal/config"
	"github.com/paycheck/budget-planner/internal/domain"
	"github.com/paycheck/budget-planner/internal/output"
	"github.com/paycheck/budget-planner/internal/store"
)

var (
	flagDBPath   string
	flagSchedule string
	flagStateKey string
)

var rootCmd = &cobra.Command{
	Use:   "paybudget",
	Short: "Paycheck and budget calculator",
	Long:  "Compute net pay from salary and deductions, and allocate it across a hierarchical budget.",
	RunE:  runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDBPath, "db", "d", "", "State database path")
	rootCmd.PersistentFlags().StringVar(&flagSchedule, "schedule", "", "Tax schedule YAML file")
	rootCmd.PersistentFlags().StringVarP(&flagStateKey, "key", "k", "", "State key (for keeping multiple profiles)")
}

// env bundles everything a command needs: the open store, the loaded
// state, its key, and the calculation engine.
type env struct {
	store  *store.Store
	state  *domain.PayState
	key    string
	engine *calculation.Engine
}

// loadEnv is the shared loading path used by all commands: settings, then
// store, then persisted state merged over defaults, then the tax schedule.
func loadEnv() (*env, error) {
	settings, err := config.LoadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v, using defaults\n", err)
	}

	dbPath := flagDBPath
	if dbPath == "" {
		dbPath = settings.DBPath()
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}

	key := flagStateKey
	if key == "" {
		key = settings.General.StateKey
	}
	if key == "" {
		key = domain.StateKey
	}

	raw, _, err := st.Load(key)
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	state := domain.LoadState(raw)

	schedulePath := flagSchedule
	if schedulePath == "" {
		schedulePath = settings.General.SchedulePath
	}
	schedule := config.DefaultTaxSchedule()
	if schedulePath != "" {
		schedule, err = config.LoadTaxSchedule(schedulePath)
		if err != nil {
			_ = st.Close()
			return nil, err
		}
	}

	return &env{
		store:  st,
		state:  state,
		key:    key,
		engine: calculation.NewEngine(schedule),
	}, nil
}

func (e *env) close() {
	_ = e.store.Close()
}

func (e *env) save() error {
	raw, err := e.state.Marshal()
	if err != nil {
		return fmt.Errorf("serializing state: %w", err)
	}
	return e.store.Save(e.key, raw)
}

func (e *env) render() {
	result := e.engine.CalculatePay(e.state)
	os.Stdout.Write(output.FormatSummary(&result))
	fmt.Println()
	os.Stdout.Write(output.FormatBudget(e.state.Budget, result.Net.PerMonth))
}

func runSummary(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.close()

	e.render()
	return nil
}
