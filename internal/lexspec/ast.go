package lexspec

import "github.com/jihwankim/genpairs/internal/lexspec/token"

// File is the parsed form of one category-partition spec source: an
// ordered list of categories, in input order (§3: "Column order in
// output follows input order").
type File struct {
	Categories []*Category
}

// Category is one parsed column header plus its choices, in input order.
type Category struct {
	Name    string
	Pos     token.Position
	Choices []*Choice
}

// Choice is one parsed value within a category, along with every
// qualifier attached to it by the grammar's qualifier* clause.
type Choice struct {
	Name    string
	Pos     token.Position
	Props   []string // 'prop P' occurrences: properties this choice declares
	Needs   []string // 'if P' occurrences: properties this choice requires
	Excl    []string // 'except P' occurrences: properties this choice forbids
	Single  bool
	Error   bool
}
