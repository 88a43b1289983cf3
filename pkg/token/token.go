package token

import "fmt"

// Kind identifies the lexical category of a token.
type Kind int

const (
	String Kind = iota
	Identifier
	Integer
	Float
	Bool
	Null

	// Keywords
	KeyFor
	KeyForCollect
	KeyWhile
	KeyWhileCollect
	KeyIf
	KeyElse
	KeyBreak
	KeyReturn
	KeyImport

	// Brackets
	LParen
	RParen
	LBrace
	RBrace
	LBrack
	RBrack

	// Arithmetic
	Minus
	Plus
	Divide
	Mult
	Mod
	Power
	Land
	Lor
	MinusEq
	PlusEq
	DivideEq
	MultEq
	ModEq

	// Assignment
	Equal

	// Equality
	Equiv
	NotEquiv
	Greater
	Less
	GreatEqual
	LessEqual

	And
	Or

	// Misc
	Not
	Comma
	Colon
	Semicolon
	Dot
	Range
	Length

	// Unexpected marks a character no recognizer accepts.
	Unexpected

	// Produced internally by the lexer and never emitted.
	IgnoreComment
	IgnoreWhitespace
)

var kindNames = map[Kind]string{
	String:          "String",
	Identifier:      "Identifier",
	Integer:         "Integer",
	Float:           "Float",
	Bool:            "Bool",
	Null:            "Null",
	KeyFor:          "for",
	KeyForCollect:   "for[]",
	KeyWhile:        "while",
	KeyWhileCollect: "while[]",
	KeyIf:           "if",
	KeyElse:         "else",
	KeyBreak:        "break",
	KeyReturn:       "return",
	KeyImport:       "import",
	LParen:          "(",
	RParen:          ")",
	LBrace:          "{",
	RBrace:          "}",
	LBrack:          "[",
	RBrack:          "]",
	Minus:           "-",
	Plus:            "+",
	Divide:          "/",
	Mult:            "*",
	Mod:             "%",
	Power:           "^",
	Land:            "&",
	Lor:             "|",
	MinusEq:         "-=",
	PlusEq:          "+=",
	DivideEq:        "/=",
	MultEq:          "*=",
	ModEq:           "%=",
	Equal:           "=",
	Equiv:           "==",
	NotEquiv:        "!=",
	Greater:         ">",
	Less:            "<",
	GreatEqual:      ">=",
	LessEqual:       "<=",
	And:             "&&",
	Or:              "||",
	Not:             "!",
	Comma:           ",",
	Colon:           ":",
	Semicolon:       ";",
	Dot:             ".",
	Range:           "..",
	Length:          "#",
	Unexpected:      "Unexpected",

	IgnoreComment:    "Comment",
	IgnoreWhitespace: "Whitespace",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Ignored reports whether tokens of this kind are filtered from the stream.
func (k Kind) Ignored() bool {
	return k == IgnoreComment || k == IgnoreWhitespace
}

// HasLiteral reports whether the token carries its source text.
func (k Kind) HasLiteral() bool {
	switch k {
	case String, Identifier, Integer, Float, Bool, Unexpected:
		return true
	default:
		return false
	}
}

// Token is a single lexeme. Lit holds the matched source slice for
// literals and identifiers; for strings it is the text between the quotes.
type Token struct {
	Kind Kind
	Lit  string
}

func (t Token) String() string {
	if t.Kind.HasLiteral() {
		return fmt.Sprintf("%s(%q)", t.Kind, t.Lit)
	}
	return t.Kind.String()
}

// Item is a token positioned in the source: 1-based line and the byte
// offset of its first character.
type Item struct {
	Line   int
	Token  Token
	Offset int
}

func (it Item) String() string {
	return fmt.Sprintf("%d:%d %s", it.Line, it.Offset, it.Token)
}

// Entry pairs a fixed lexeme with the token it produces.
type Entry struct {
	Text string
	Kind Kind
}

// Keywords are tried after booleans and before identifiers, so an exact
// keyword wins a tie with the identifier recognizer.
var Keywords = []Entry{
	{"null", Null},
	{"for", KeyFor},
	{"for[]", KeyForCollect},
	{"while", KeyWhile},
	{"while[]", KeyWhileCollect},
	{"if", KeyIf},
	{"else", KeyElse},
	{"break", KeyBreak},
	{"return", KeyReturn},
	{"import", KeyImport},
}

// Operators are ordered longest first.
var Operators = []Entry{
	{"-=", MinusEq},
	{"+=", PlusEq},
	{"/=", DivideEq},
	{"*=", MultEq},
	{"%=", ModEq},
	{"==", Equiv},
	{"!=", NotEquiv},
	{">=", GreatEqual},
	{"<=", LessEqual},
	{"&&", And},
	{"||", Or},
	{"-", Minus},
	{"+", Plus},
	{"/", Divide},
	{"*", Mult},
	{"%", Mod},
	{"^", Power},
	{"&", Land},
	{"|", Lor},
	{"=", Equal},
	{"!", Not},
	{">", Greater},
	{"<", Less},
	{"#", Length},
}

var Punctuation = []Entry{
	{"(", LParen},
	{")", RParen},
	{"{", LBrace},
	{"}", RBrace},
	{"[", LBrack},
	{"]", RBrack},
	{",", Comma},
	{":", Colon},
	{";", Semicolon},
	{".", Dot},
	{"..", Range},
}

// Booleans holds the two boolean literal spellings.
var Booleans = []string{"true", "false"}
