package audit

import (
	"fmt"
	"strings"

	"github.com/dataflow-ng/statement-auditor/internal/domain"
)

// RiskPolicy holds the tunable parameters of the risk pass. The turnover
// heuristic is a blunt proxy with no agreed false-positive tolerance, so
// both its multiplier and its presence are policy, not law.
type RiskPolicy struct {
	// DeclaredSalary is the applicant's stated monthly income.
	DeclaredSalary float64

	// LumpSumMultiplier scales the salary into the lump-sum threshold.
	LumpSumMultiplier float64

	// TurnoverMultiplier scales the closing balance for the turnover check.
	TurnoverMultiplier float64

	// TurnoverEnabled switches the turnover heuristic on or off.
	TurnoverEnabled bool
}

// DefaultRiskPolicy returns the policy for a given declared salary with the
// standard multipliers (3x salary lump-sum threshold, 5x balance turnover).
func DefaultRiskPolicy(declaredSalary float64) RiskPolicy {
	return RiskPolicy{
		DeclaredSalary:     declaredSalary,
		LumpSumMultiplier:  3,
		TurnoverMultiplier: 5,
		TurnoverEnabled:    true,
	}
}

// EvaluateRisk runs the rule set over a normalized record sequence and
// returns flags in record order plus the headline metrics. Pure function of
// its inputs; an empty sequence yields no flags and a zero summary, never an
// error. It trusts the sequence order: the last record is taken as the
// closing entry, exactly as the parser preserved it.
func EvaluateRisk(records []domain.TransactionRecord, policy RiskPolicy) ([]domain.Flag, domain.AuditSummary) {
	var flags []domain.Flag
	var summary domain.AuditSummary

	threshold := policy.DeclaredSalary * policy.LumpSumMultiplier
	for i, rec := range records {
		summary.TotalInflow += rec.Credit

		if rec.Credit > threshold && !containsSalary(rec.Description) {
			flags = append(flags, domain.Flag{
				Kind:        domain.FlagLumpSum,
				Message:     fmt.Sprintf("LUMP SUM: ₦%s on %s", FormatMoney(rec.Credit), rec.Date),
				RecordIndex: i,
			})
		}
	}

	if len(records) > 0 {
		summary.ClosingBalance = records[len(records)-1].Balance
	}

	if policy.TurnoverEnabled && len(records) > 0 && summary.ClosingBalance > 0 {
		if summary.TotalInflow > summary.ClosingBalance*policy.TurnoverMultiplier {
			flags = append(flags, domain.Flag{
				Kind: domain.FlagTurnoverRisk,
				Message: fmt.Sprintf("TURNOVER RISK: inflow ₦%s against closing balance ₦%s",
					FormatMoney(summary.TotalInflow), FormatMoney(summary.ClosingBalance)),
				RecordIndex: -1,
			})
		}
	}

	return flags, summary
}

func containsSalary(description string) bool {
	return strings.Contains(strings.ToUpper(description), "SALARY")
}

// FormatMoney renders an amount with thousands separators and two decimal
// places, e.g. 800000 -> "800,000.00".
func FormatMoney(v float64) string {
	s := fmt.Sprintf("%.2f", v)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart := s[:len(s)-3]
	frac := s[len(s)-3:]

	var b strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}

	out := b.String() + frac
	if neg {
		out = "-" + out
	}
	return out
}
