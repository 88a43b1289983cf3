package ast

type NodeType string

const (
	NodeIdentifier       NodeType = "Identifier"
	NodeIntegerLiteral   NodeType = "IntegerLiteral"
	NodeFloatLiteral     NodeType = "FloatLiteral"
	NodeStringLiteral    NodeType = "StringLiteral"
	NodeBooleanLiteral   NodeType = "BooleanLiteral"
	NodeNullLiteral      NodeType = "NullLiteral"
	NodeArrayLiteral     NodeType = "ArrayLiteral"
	NodeObjectLiteral    NodeType = "ObjectLiteral"
	NodeObjectField      NodeType = "ObjectField"
	NodeFunctionLiteral  NodeType = "FunctionLiteral"
	NodeBreakLiteral     NodeType = "BreakLiteral"
	NodeReturnLiteral    NodeType = "ReturnLiteral"
	NodeValueLiteral     NodeType = "ValueLiteral"
	NodeIndexExpression  NodeType = "IndexExpression"
	NodeUnaryExpression  NodeType = "UnaryExpression"
	NodeBinaryExpression NodeType = "BinaryExpression"
	NodeBlockExpression  NodeType = "BlockExpression"
	NodeScopeExpression  NodeType = "ScopeExpression"
	NodeArguments        NodeType = "Arguments"
	NodeSpreadExpression NodeType = "SpreadExpression"
	NodeRangeExpression  NodeType = "RangeExpression"
	NodeIfExpression     NodeType = "IfExpression"
	NodeImportExpression NodeType = "ImportExpression"
	NodeWhileLoop        NodeType = "WhileLoop"
	NodeForLoop          NodeType = "ForLoop"
	NodeFunctionCall     NodeType = "FunctionCall"
	NodeNativeCall       NodeType = "NativeCall"
)

type Node interface {
	NodeType() NodeType
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Marker interfaces.

// Expression is any node the evaluator can reduce to a value. Every tigr
// construct is an expression, including loops and blocks.
type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Literal interface {
	Expression
	literalNode()
}

type literalMarker struct{}

func (literalMarker) literalNode() {}

// Identifier

type Identifier struct {
	nodeImpl
	expressionMarker

	Name string `json:"name"`
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier), Name: name}
}

// Literals

type IntegerLiteral struct {
	nodeImpl
	expressionMarker
	literalMarker

	Value int64 `json:"value"`
}

func NewIntegerLiteral(value int64) *IntegerLiteral {
	return &IntegerLiteral{nodeImpl: newNodeImpl(NodeIntegerLiteral), Value: value}
}

type FloatLiteral struct {
	nodeImpl
	expressionMarker
	literalMarker

	Value float64 `json:"value"`
}

func NewFloatLiteral(value float64) *FloatLiteral {
	return &FloatLiteral{nodeImpl: newNodeImpl(NodeFloatLiteral), Value: value}
}

type StringLiteral struct {
	nodeImpl
	expressionMarker
	literalMarker

	Value string `json:"value"`
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
}

type BooleanLiteral struct {
	nodeImpl
	expressionMarker
	literalMarker

	Value bool `json:"value"`
}

func NewBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral), Value: value}
}

type NullLiteral struct {
	nodeImpl
	expressionMarker
	literalMarker
}

func NewNullLiteral() *NullLiteral {
	return &NullLiteral{nodeImpl: newNodeImpl(NodeNullLiteral)}
}

type ArrayLiteral struct {
	nodeImpl
	expressionMarker
	literalMarker

	Elements []Expression `json:"elements"`
}

func NewArrayLiteral(elements []Expression) *ArrayLiteral {
	return &ArrayLiteral{nodeImpl: newNodeImpl(NodeArrayLiteral), Elements: elements}
}

type ObjectField struct {
	nodeImpl

	Key   string     `json:"key"`
	Value Expression `json:"value"`
}

func NewObjectField(key string, value Expression) *ObjectField {
	return &ObjectField{nodeImpl: newNodeImpl(NodeObjectField), Key: key, Value: value}
}

type ObjectLiteral struct {
	nodeImpl
	expressionMarker
	literalMarker

	Fields []*ObjectField `json:"fields"`
}

func NewObjectLiteral(fields []*ObjectField) *ObjectLiteral {
	return &ObjectLiteral{nodeImpl: newNodeImpl(NodeObjectLiteral), Fields: fields}
}

// FunctionLiteral captures the environment it is evaluated in. Params holds
// the parameter identifiers in declaration order.
type FunctionLiteral struct {
	nodeImpl
	expressionMarker
	literalMarker

	Params *Arguments `json:"params"`
	Body   Expression `json:"body"`
}

func NewFunctionLiteral(params *Arguments, body Expression) *FunctionLiteral {
	if params == nil {
		params = NewArguments(nil)
	}
	return &FunctionLiteral{nodeImpl: newNodeImpl(NodeFunctionLiteral), Params: params, Body: body}
}

// BreakLiteral leaves the innermost loop. A nil Value breaks with null.
type BreakLiteral struct {
	nodeImpl
	expressionMarker
	literalMarker

	Value Expression `json:"value,omitempty"`
}

func NewBreakLiteral(value Expression) *BreakLiteral {
	return &BreakLiteral{nodeImpl: newNodeImpl(NodeBreakLiteral), Value: value}
}

// ReturnLiteral leaves the innermost function call. A nil Value returns null.
type ReturnLiteral struct {
	nodeImpl
	expressionMarker
	literalMarker

	Value Expression `json:"value,omitempty"`
}

func NewReturnLiteral(value Expression) *ReturnLiteral {
	return &ReturnLiteral{nodeImpl: newNodeImpl(NodeReturnLiteral), Value: value}
}

// ValueLiteral wraps an already evaluated runtime value so it can be fed
// back through the evaluator. It is never serialized.
type ValueLiteral struct {
	nodeImpl
	expressionMarker
	literalMarker

	Value any `json:"-"`
}

func NewValueLiteral(value any) *ValueLiteral {
	return &ValueLiteral{nodeImpl: newNodeImpl(NodeValueLiteral), Value: value}
}

// Operators

type UnaryOperator string

const (
	OpNeg UnaryOperator = "-"
	OpNot UnaryOperator = "!"
	OpLen UnaryOperator = "#"
)

func (op UnaryOperator) Valid() bool {
	switch op {
	case OpNeg, OpNot, OpLen:
		return true
	}
	return false
}

type BinaryOperator string

const (
	OpPow    BinaryOperator = "^"
	OpAssign BinaryOperator = "="
	OpMul    BinaryOperator = "*"
	OpDiv    BinaryOperator = "/"
	OpAdd    BinaryOperator = "+"
	OpSub    BinaryOperator = "-"
	OpMod    BinaryOperator = "%"
	OpAddEq  BinaryOperator = "+="
	OpSubEq  BinaryOperator = "-="
	OpMulEq  BinaryOperator = "*="
	OpDivEq  BinaryOperator = "/="
	OpModEq  BinaryOperator = "%="
	OpAnd    BinaryOperator = "&&"
	OpOr     BinaryOperator = "||"
	OpEqu    BinaryOperator = "=="
	OpNeq    BinaryOperator = "!="
	OpLt     BinaryOperator = "<"
	OpLEt    BinaryOperator = "<="
	OpGt     BinaryOperator = ">"
	OpGEt    BinaryOperator = ">="
)

var compoundBase = map[BinaryOperator]BinaryOperator{
	OpAddEq: OpAdd,
	OpSubEq: OpSub,
	OpMulEq: OpMul,
	OpDivEq: OpDiv,
	OpModEq: OpMod,
}

// Compound returns the arithmetic operator behind a compound assignment
// such as `+=`, and false for every other operator.
func (op BinaryOperator) Compound() (BinaryOperator, bool) {
	base, ok := compoundBase[op]
	return base, ok
}

// Assigns reports whether the operator writes to its left operand.
func (op BinaryOperator) Assigns() bool {
	_, compound := compoundBase[op]
	return op == OpAssign || compound
}

func (op BinaryOperator) Valid() bool {
	switch op {
	case OpPow, OpAssign, OpMul, OpDiv, OpAdd, OpSub, OpMod,
		OpAddEq, OpSubEq, OpMulEq, OpDivEq, OpModEq,
		OpAnd, OpOr, OpEqu, OpNeq, OpLt, OpLEt, OpGt, OpGEt:
		return true
	}
	return false
}

// Expressions

type IndexExpression struct {
	nodeImpl
	expressionMarker

	Target Expression `json:"target"`
	Index  Expression `json:"index"`
}

func NewIndexExpression(target, index Expression) *IndexExpression {
	return &IndexExpression{nodeImpl: newNodeImpl(NodeIndexExpression), Target: target, Index: index}
}

type UnaryExpression struct {
	nodeImpl
	expressionMarker

	Operator UnaryOperator `json:"operator"`
	Operand  Expression    `json:"operand"`
}

func NewUnaryExpression(operator UnaryOperator, operand Expression) *UnaryExpression {
	return &UnaryExpression{nodeImpl: newNodeImpl(NodeUnaryExpression), Operator: operator, Operand: operand}
}

type BinaryExpression struct {
	nodeImpl
	expressionMarker

	Operator BinaryOperator `json:"operator"`
	Left     Expression     `json:"left"`
	Right    Expression     `json:"right"`
}

func NewBinaryExpression(operator BinaryOperator, left, right Expression) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinaryExpression), Operator: operator, Left: left, Right: right}
}

// BlockExpression evaluates Statements in order in the current scope and
// yields the value of Result.
type BlockExpression struct {
	nodeImpl
	expressionMarker

	Statements []Expression `json:"statements"`
	Result     Expression   `json:"result"`
}

func NewBlockExpression(statements []Expression, result Expression) *BlockExpression {
	if result == nil {
		result = NewNullLiteral()
	}
	return &BlockExpression{nodeImpl: newNodeImpl(NodeBlockExpression), Statements: statements, Result: result}
}

// ScopeExpression evaluates Body in a fresh child scope.
type ScopeExpression struct {
	nodeImpl
	expressionMarker

	Body Expression `json:"body"`
}

func NewScopeExpression(body Expression) *ScopeExpression {
	return &ScopeExpression{nodeImpl: newNodeImpl(NodeScopeExpression), Body: body}
}

type Arguments struct {
	nodeImpl
	expressionMarker

	Items []Expression `json:"items"`
}

func NewArguments(items []Expression) *Arguments {
	return &Arguments{nodeImpl: newNodeImpl(NodeArguments), Items: items}
}

type SpreadExpression struct {
	nodeImpl
	expressionMarker

	Value Expression `json:"value"`
}

func NewSpreadExpression(value Expression) *SpreadExpression {
	return &SpreadExpression{nodeImpl: newNodeImpl(NodeSpreadExpression), Value: value}
}

// RangeExpression describes from..to:step. A nil Step means 1.
type RangeExpression struct {
	nodeImpl
	expressionMarker

	From Expression `json:"from"`
	To   Expression `json:"to"`
	Step Expression `json:"step,omitempty"`
}

func NewRangeExpression(from, to, step Expression) *RangeExpression {
	return &RangeExpression{nodeImpl: newNodeImpl(NodeRangeExpression), From: from, To: to, Step: step}
}

type IfExpression struct {
	nodeImpl
	expressionMarker

	Condition Expression `json:"condition"`
	Then      Expression `json:"then"`
	Else      Expression `json:"else,omitempty"`
}

func NewIfExpression(condition, then, otherwise Expression) *IfExpression {
	return &IfExpression{nodeImpl: newNodeImpl(NodeIfExpression), Condition: condition, Then: then, Else: otherwise}
}

type ImportExpression struct {
	nodeImpl
	expressionMarker

	Path Expression `json:"path"`
}

func NewImportExpression(path Expression) *ImportExpression {
	return &ImportExpression{nodeImpl: newNodeImpl(NodeImportExpression), Path: path}
}

// Loops

// WhileLoop re-evaluates Body while Condition is truthy. With Collect set
// the loop yields every body value as an array.
type WhileLoop struct {
	nodeImpl
	expressionMarker

	Condition Expression `json:"condition"`
	Body      Expression `json:"body"`
	Collect   bool       `json:"collect,omitempty"`
}

func NewWhileLoop(condition, body Expression, collect bool) *WhileLoop {
	return &WhileLoop{nodeImpl: newNodeImpl(NodeWhileLoop), Condition: condition, Body: body, Collect: collect}
}

// ForLoop takes one to three arguments: [[enumerator,] item,] source.
type ForLoop struct {
	nodeImpl
	expressionMarker

	Args    *Arguments `json:"args"`
	Body    Expression `json:"body"`
	Collect bool       `json:"collect,omitempty"`
}

func NewForLoop(args *Arguments, body Expression, collect bool) *ForLoop {
	if args == nil {
		args = NewArguments(nil)
	}
	return &ForLoop{nodeImpl: newNodeImpl(NodeForLoop), Args: args, Body: body, Collect: collect}
}

// Calls

type FunctionCall struct {
	nodeImpl
	expressionMarker

	Callee Expression `json:"callee"`
	Args   *Arguments `json:"args"`
}

func NewFunctionCall(callee Expression, args *Arguments) *FunctionCall {
	if args == nil {
		args = NewArguments(nil)
	}
	return &FunctionCall{nodeImpl: newNodeImpl(NodeFunctionCall), Callee: callee, Args: args}
}

type NativeCall struct {
	nodeImpl
	expressionMarker

	Name string     `json:"name"`
	Args *Arguments `json:"args"`
}

func NewNativeCall(name string, args *Arguments) *NativeCall {
	if args == nil {
		args = NewArguments(nil)
	}
	return &NativeCall{nodeImpl: newNodeImpl(NodeNativeCall), Name: name, Args: args}
}
