package token

// Value carries the payload scanned alongside a Token: its raw source
// text, its position, and (for the tokens that need it) a decoded value.
type Value struct {
	Raw    string // exact source text of the token
	Pos    Pos    // position of the first byte of the token
	String string // decoded value, for STRING and COMMENT tokens
	Int    int64  // decoded value, for INT tokens
	Float  float64 // decoded value, for FLOAT tokens
}
