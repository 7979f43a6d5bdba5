package service

import (
	"context"
	"fmt"

	"github.com/shinyyama/commerce-seed/internal/repository"
)

type CheckResult struct {
	Name       string
	Violations int64
}

func (r CheckResult) OK() bool {
	return r.Violations == 0
}

// Verifier runs the consistency checks against seeded data.
type Verifier struct {
	rt     Runtime
	audit  repository.AuditRepository
	checks []repository.Check
}

func NewVerifier(rt Runtime, audit repository.AuditRepository, checks []repository.Check) *Verifier {
	return &Verifier{rt: rt.withDefaults(), audit: audit, checks: checks}
}

// Run evaluates every check. A query error aborts; violations do not.
func (v *Verifier) Run(ctx context.Context) ([]CheckResult, error) {
	results := make([]CheckResult, 0, len(v.checks))
	for _, c := range v.checks {
		n, err := v.audit.CountViolations(ctx, c)
		if err != nil {
			return results, fmt.Errorf("check %q: %w", c.Name, err)
		}
		res := CheckResult{Name: c.Name, Violations: n}
		if res.OK() {
			v.rt.Logger.Printf("ok    %s", c.Name)
		} else {
			v.rt.Logger.Printf("FAIL  %s: %d violating rows", c.Name, n)
		}
		results = append(results, res)
	}
	return results, nil
}
