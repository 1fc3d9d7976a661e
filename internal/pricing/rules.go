package pricing

import (
	"encoding/json"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"secrethouse/internal/domain"
)

// RuleIndex holds the published set of date pricing rules. Like the catalog
// it is read-mostly: admin writes go through the repository and republish
// the whole set.
type RuleIndex struct {
	snapshot atomic.Pointer[[]domain.DatePricingRule]
}

func NewRuleIndex() *RuleIndex {
	idx := &RuleIndex{}
	idx.snapshot.Store(&[]domain.DatePricingRule{})
	return idx
}

// Publish replaces the rule set. Intervals are normalized so that
// start <= end before they become visible to Match.
func (idx *RuleIndex) Publish(rules []domain.DatePricingRule) {
	next := make([]domain.DatePricingRule, len(rules))
	copy(next, rules)
	for i := range next {
		if next[i].EndDate.Before(next[i].StartDate) {
			next[i].StartDate, next[i].EndDate = next[i].EndDate, next[i].StartDate
		}
	}
	idx.snapshot.Store(&next)
}

// Match returns the rule covering the date, or nil. When several rules
// overlap the narrowest interval wins; equal widths fall back to the
// numerically smallest rule id so the result is deterministic. Rule ids
// are integers here, so numeric order is the natural tie-break.
func (idx *RuleIndex) Match(date time.Time) *domain.DatePricingRule {
	rules := *idx.snapshot.Load()

	var best *domain.DatePricingRule
	for i := range rules {
		r := &rules[i]
		if !r.Covers(date) {
			continue
		}
		if best == nil {
			best = r
			continue
		}
		span, bestSpan := r.SpanDays(), best.SpanDays()
		if span < bestSpan || (span == bestSpan && r.ID < best.ID) {
			best = r
		}
	}
	if best == nil {
		return nil
	}
	matched := *best
	return &matched
}

type rulesFile struct {
	DateRules []ruleEntry `json:"date_rules"`
}

type ruleEntry struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	PriceOverride int64  `json:"price_override"`
}

const ruleDateLayout = "2006-01-02"

// Reload reads the date_rules section of the config file and publishes it.
// Shares the file with the rate catalog; either section may be absent.
func (idx *RuleIndex) Reload(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read rules file: %w", err)
	}

	var file rulesFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("parse rules file: %w", err)
	}

	seen := make(map[int64]bool, len(file.DateRules))
	rules := make([]domain.DatePricingRule, 0, len(file.DateRules))
	for _, entry := range file.DateRules {
		if seen[entry.ID] {
			return fmt.Errorf("rules file: duplicate rule id %d", entry.ID)
		}
		seen[entry.ID] = true

		start, err := time.Parse(ruleDateLayout, entry.StartDate)
		if err != nil {
			return fmt.Errorf("rules file: rule %d start_date: %w", entry.ID, err)
		}
		end, err := time.Parse(ruleDateLayout, entry.EndDate)
		if err != nil {
			return fmt.Errorf("rules file: rule %d end_date: %w", entry.ID, err)
		}
		rules = append(rules, domain.DatePricingRule{
			ID:            entry.ID,
			Name:          entry.Name,
			StartDate:     start,
			EndDate:       end,
			PriceOverride: entry.PriceOverride,
		})
	}

	idx.Publish(rules)
	return nil
}

// Rules returns a copy of the published set.
func (idx *RuleIndex) Rules() []domain.DatePricingRule {
	rules := *idx.snapshot.Load()
	out := make([]domain.DatePricingRule, len(rules))
	copy(out, rules)
	return out
}

func (idx *RuleIndex) String() string {
	return fmt.Sprintf("RuleIndex(%d rules)", len(*idx.snapshot.Load()))
}
