package questionbank

import "fmt"

// Branch names an answer branch of a question.
type Branch string

const (
	BranchYes Branch = "yes"
	BranchNo  Branch = "no"
)

// Issue describes a question whose evidence references a code the catalog
// does not know. Issues are warnings: scoring still works and the code falls
// back to the catalog's unknown metadata.
type Issue struct {
	QuestionID string
	Branch     Branch
	Code       string
}

func (i Issue) String() string {
	return fmt.Sprintf("question %q (%s) references unknown code %q", i.QuestionID, i.Branch, i.Code)
}

// CodeSet reports whether a code exists. *catalog.Catalog satisfies it.
type CodeSet interface {
	Has(code string) bool
}

// Validate cross-checks every evidence code against codes and returns the
// unknown references in bank order.
func (b *Bank) Validate(codes CodeSet) []Issue {
	var issues []Issue
	for _, q := range b.questions {
		for _, code := range q.OnYes.Codes() {
			if !codes.Has(code) {
				issues = append(issues, Issue{QuestionID: q.ID, Branch: BranchYes, Code: code})
			}
		}
		for _, code := range q.OnNo.Codes() {
			if !codes.Has(code) {
				issues = append(issues, Issue{QuestionID: q.ID, Branch: BranchNo, Code: code})
			}
		}
	}
	return issues
}
