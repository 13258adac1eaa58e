package fpgrowth

import (
	"fmt"
	"sort"
	"strings"

	"github.com/basketlab/fpgrowth/itemset"
)

/*
Rule is an association rule: transactions containing every antecedent
item also contain every consequent item with the given confidence.
Support is the support count of the union of both sides.
*/
type Rule struct {
	Antecedent []string `json:"antecedent"`
	Consequent []string `json:"consequent"`
	Confidence float64  `json:"confidence"`
	Support    int      `json:"support"`
}

func (r *Rule) String() string {
	return fmt.Sprintf("%s => %s (%.2f)", strings.Join(r.Antecedent, ","), strings.Join(r.Consequent, ","), r.Confidence)
}

/*
DeriveRules takes a mined pattern table and a minimum confidence
ratio in (0, 1] and returns every rule A => C where A is a non-empty
proper subset of a frequent itemset, C its complement, and
support(itemset) / support(A) reaches the confidence floor.

Every subset of a frequent itemset is itself frequent, so a table
missing the support of some antecedent is corrupt; DeriveRules
reports that as an error rather than skipping the rule.

Rules are sorted by descending confidence, then descending support,
then antecedent and consequent labels, so the output is deterministic.
*/
func DeriveRules(table *itemset.Table, minConfidence float64) ([]Rule, error) {
	if minConfidence <= 0 || minConfidence > 1 {
		return nil, fmt.Errorf("deriving rules: minimum confidence must be in (0, 1], got %v", minConfidence)
	}
	var rules []Rule
	for _, p := range table.Patterns() {
		if p.Size() < 2 {
			continue
		}
		for mask := 1; mask < 1<<p.Size()-1; mask++ {
			antecedent := make([]string, 0, p.Size()-1)
			consequent := make([]string, 0, p.Size()-1)
			for i, item := range p.Items {
				if mask&(1<<i) != 0 {
					antecedent = append(antecedent, item)
				} else {
					consequent = append(consequent, item)
				}
			}
			antecedentSupport, ok := table.Support(antecedent)
			if !ok {
				return nil, fmt.Errorf("deriving rules: pattern table is missing subset {%s} of frequent itemset {%s}", strings.Join(antecedent, ","), p)
			}
			confidence := float64(p.Support) / float64(antecedentSupport)
			if confidence >= minConfidence {
				rules = append(rules, Rule{
					Antecedent: antecedent,
					Consequent: consequent,
					Confidence: confidence,
					Support:    p.Support,
				})
			}
		}
	}
	sort.Slice(rules, func(i, j int) bool {
		if rules[i].Confidence != rules[j].Confidence {
			return rules[i].Confidence > rules[j].Confidence
		}
		if rules[i].Support != rules[j].Support {
			return rules[i].Support > rules[j].Support
		}
		if a, b := itemset.Key(rules[i].Antecedent), itemset.Key(rules[j].Antecedent); a != b {
			return a < b
		}
		return itemset.Key(rules[i].Consequent) < itemset.Key(rules[j].Consequent)
	})
	return rules, nil
}
