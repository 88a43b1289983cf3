package ast

// Identifier and literal helpers.

func ID(name string) *Identifier {
	return NewIdentifier(name)
}

func Str(value string) *StringLiteral {
	return NewStringLiteral(value)
}

func Int(value int64) *IntegerLiteral {
	return NewIntegerLiteral(value)
}

func Flt(value float64) *FloatLiteral {
	return NewFloatLiteral(value)
}

func Bool(value bool) *BooleanLiteral {
	return NewBooleanLiteral(value)
}

func Null() *NullLiteral {
	return NewNullLiteral()
}

func Arr(elements ...Expression) *ArrayLiteral {
	return NewArrayLiteral(elements)
}

func Field(key string, value Expression) *ObjectField {
	return NewObjectField(key, value)
}

func Obj(fields ...*ObjectField) *ObjectLiteral {
	return NewObjectLiteral(fields)
}

func Val(value any) *ValueLiteral {
	return NewValueLiteral(value)
}

// Fn builds a function literal from parameter names.
func Fn(params []string, body Expression) *FunctionLiteral {
	items := make([]Expression, 0, len(params))
	for _, name := range params {
		items = append(items, ID(name))
	}
	return NewFunctionLiteral(NewArguments(items), body)
}

func Brk(value Expression) *BreakLiteral {
	return NewBreakLiteral(value)
}

func Ret(value Expression) *ReturnLiteral {
	return NewReturnLiteral(value)
}

// Expression helpers.

func Args(items ...Expression) *Arguments {
	return NewArguments(items)
}

func Spread(value Expression) *SpreadExpression {
	return NewSpreadExpression(value)
}

func Index(target, index Expression) *IndexExpression {
	return NewIndexExpression(target, index)
}

func Un(operator UnaryOperator, operand Expression) *UnaryExpression {
	return NewUnaryExpression(operator, operand)
}

func Neg(operand Expression) *UnaryExpression {
	return Un(OpNeg, operand)
}

func Not(operand Expression) *UnaryExpression {
	return Un(OpNot, operand)
}

func Len(operand Expression) *UnaryExpression {
	return Un(OpLen, operand)
}

func Bin(operator BinaryOperator, left, right Expression) *BinaryExpression {
	return NewBinaryExpression(operator, left, right)
}

func Assign(target, value Expression) *BinaryExpression {
	return Bin(OpAssign, target, value)
}

// Block sequences exprs in the current scope; the last one is the result.
func Block(exprs ...Expression) *BlockExpression {
	if len(exprs) == 0 {
		return NewBlockExpression(nil, nil)
	}
	return NewBlockExpression(exprs[:len(exprs)-1], exprs[len(exprs)-1])
}

func Scope(body Expression) *ScopeExpression {
	return NewScopeExpression(body)
}

// ScopeBlock is a block evaluated in its own child scope, the shape a
// braced body takes.
func ScopeBlock(exprs ...Expression) *ScopeExpression {
	return Scope(Block(exprs...))
}

func Range(from, to Expression) *RangeExpression {
	return NewRangeExpression(from, to, nil)
}

func RangeStep(from, to, step Expression) *RangeExpression {
	return NewRangeExpression(from, to, step)
}

func If(condition, then Expression) *IfExpression {
	return NewIfExpression(condition, then, nil)
}

func IfElse(condition, then, otherwise Expression) *IfExpression {
	return NewIfExpression(condition, then, otherwise)
}

func Import(path Expression) *ImportExpression {
	return NewImportExpression(path)
}

// Loop helpers.

func While(condition, body Expression) *WhileLoop {
	return NewWhileLoop(condition, body, false)
}

func WhileCollect(condition, body Expression) *WhileLoop {
	return NewWhileLoop(condition, body, true)
}

func For(body Expression, args ...Expression) *ForLoop {
	return NewForLoop(Args(args...), body, false)
}

func ForCollect(body Expression, args ...Expression) *ForLoop {
	return NewForLoop(Args(args...), body, true)
}

// Call helpers.

func CallExpr(callee Expression, args ...Expression) *FunctionCall {
	return NewFunctionCall(callee, Args(args...))
}

func Call(name string, args ...Expression) *FunctionCall {
	return CallExpr(ID(name), args...)
}

func Native(name string, args ...Expression) *NativeCall {
	return NewNativeCall(name, Args(args...))
}
