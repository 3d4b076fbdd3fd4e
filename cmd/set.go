package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/paycheck/budget-planner/internal/domain"
	"github.com/paycheck/budget-planner/pkg/numeric"
)

var setCmd = &cobra.Command{
	Use:   "set <field> <value>",
	Short: "Update a pay input",
	Long: "Update a pay input field. Invalid numeric values are treated as zero.\n" +
		"Run 'paybudget set' with no arguments to list the fields.",
	Args: cobra.RangeArgs(0, 2),
	RunE: runSet,
}

func init() {
	rootCmd.AddCommand(setCmd)
}

// payFields maps CLI field names to state fields. Annual fields fold into
// their per-pay counterparts when the state is sanitized.
func payFields(state *domain.PayState) map[string]*numeric.Flex {
	return map[string]*numeric.Flex{
		"salary":                &state.SalaryPerPay,
		"salary-annual":         &state.SalaryAnnual,
		"periods":               &state.PeriodsPerYear,
		"standard-deduction":    &state.StandardDeductionAnnual,
		"401k-percent":          &state.K401Percent,
		"hsa":                   &state.HSAPerPay,
		"hsa-annual":            &state.HSAAnnual,
		"dental":                &state.DentalPerPay,
		"dental-annual":         &state.DentalAnnual,
		"medical":               &state.MedicalPerPay,
		"medical-annual":        &state.MedicalAnnual,
		"other-pretax":          &state.OtherPretaxPerPay,
		"other-pretax-annual":   &state.OtherPretaxAnnual,
		"federal-rate":          &state.FederalRate,
		"federal-extra-percent": &state.FederalExtraPercent,
		"w4-extra":              &state.W4ExtraPerPay,
		"state-rate":            &state.StateRate,
		"state-extra-percent":   &state.StateExtraPercent,
		"social-security-rate":  &state.SocialSecurityRate,
		"medicare-rate":         &state.MedicareRate,
		"sdi-rate":              &state.SDIRate,
		"espp-percent":          &state.EsppPercent,
	}
}

func runSet(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.close()

	fields := payFields(e.state)

	if len(args) < 2 {
		names := make([]string, 0, len(fields)+1)
		for name := range fields {
			names = append(names, name)
		}
		names = append(names, "filing-status")
		sort.Strings(names)
		fmt.Println("Fields:")
		for _, name := range names {
			fmt.Printf("  %s\n", name)
		}
		return nil
	}

	name := strings.ToLower(args[0])
	if name == "filing-status" {
		e.state.FilingStatus = domain.FilingStatus(args[1]).Normalize()
	} else {
		field, ok := fields[name]
		if !ok {
			return fmt.Errorf("unknown field %q (run 'paybudget set' for the list)", name)
		}
		*field = numeric.NewFlex(numeric.CoerceString(args[1]))
	}

	e.state.Sanitize()
	if err := e.save(); err != nil {
		return err
	}

	e.render()
	return nil
}
