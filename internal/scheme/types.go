package scheme

// #region operator

// Operator is the closed set of comparisons a rule can perform.
type Operator string

const (
	OpGreater      Operator = ">"
	OpLess         Operator = "<"
	OpGreaterEqual Operator = ">="
	OpLessEqual    Operator = "<="
	OpEqual        Operator = "=="
	OpBetween      Operator = "between"
	OpNotBetween   Operator = "not_between"
)

// #endregion

// #region combine-mode

// CombineMode controls how a classification's rules are combined.
type CombineMode string

const (
	CombineAll CombineMode = "ALL"
	CombineAny CombineMode = "ANY"
)

// #endregion

// #region rule

// Rule is a single (field, operator, operand) comparison.
// Operands are pointers: a rule whose operator needs an operand that is nil
// is malformed and evaluates to false rather than failing.
type Rule struct {
	Field    string
	Operator Operator
	Value    *float64 // scalar operand for >, <, >=, <=, ==
	Min      *float64 // lower bound for between / not_between
	Max      *float64 // upper bound for between / not_between
}

// #endregion

// #region classification

// Classification is one labeled outcome within a scheme. Confidence is an
// author-assigned certainty weight in [0,1], not a computed probability.
type Classification struct {
	Name       string
	Color      string
	Confidence float64
	Logic      CombineMode
	Rules      []Rule
}

// #endregion

// #region scheme

// Scheme is a named, versioned, ordered rule set for one scientific domain.
// Classification order is significant: the first match wins.
type Scheme struct {
	ID              string
	Name            string
	Version         string
	RequiredFields  []string
	Classifications []Classification
}

// Info is the lightweight listing entry returned by Registry.Available.
type Info struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// #endregion
