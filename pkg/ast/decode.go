package ast

import (
	"encoding/json"
	"fmt"
	"math"
)

// DecodeExpression rebuilds an expression from its generic serialized form:
// nested map[string]any values whose "type" field names the node, as
// produced by decoding JSON, YAML or msgpack into interface values.
func DecodeExpression(raw any) (Expression, error) {
	node, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected node object, got %T", raw)
	}
	decoded, err := DecodeNode(node)
	if err != nil {
		return nil, err
	}
	expr, ok := decoded.(Expression)
	if !ok {
		return nil, fmt.Errorf("%s is not an expression", decoded.NodeType())
	}
	return expr, nil
}

func DecodeNode(node map[string]any) (Node, error) {
	typ, _ := node["type"].(string)
	switch NodeType(typ) {
	case NodeIdentifier:
		name, err := stringField(node, "name")
		if err != nil {
			return nil, err
		}
		return NewIdentifier(name), nil
	case NodeIntegerLiteral:
		val, err := int64Value(node["value"])
		if err != nil {
			return nil, fmt.Errorf("IntegerLiteral value: %w", err)
		}
		return NewIntegerLiteral(val), nil
	case NodeFloatLiteral:
		val, err := float64Value(node["value"])
		if err != nil {
			return nil, fmt.Errorf("FloatLiteral value: %w", err)
		}
		return NewFloatLiteral(val), nil
	case NodeStringLiteral:
		val, _ := node["value"].(string)
		return NewStringLiteral(val), nil
	case NodeBooleanLiteral:
		val, _ := node["value"].(bool)
		return NewBooleanLiteral(val), nil
	case NodeNullLiteral:
		return NewNullLiteral(), nil
	case NodeArrayLiteral:
		elements, err := expressionList(node, "elements")
		if err != nil {
			return nil, err
		}
		return NewArrayLiteral(elements), nil
	case NodeObjectLiteral:
		fieldsVal, _ := node["fields"].([]any)
		fields := make([]*ObjectField, 0, len(fieldsVal))
		for _, raw := range fieldsVal {
			child, ok := raw.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("invalid object field %T", raw)
			}
			key, err := stringField(child, "key")
			if err != nil {
				return nil, err
			}
			value, err := requiredExpression(child, "value")
			if err != nil {
				return nil, err
			}
			fields = append(fields, NewObjectField(key, value))
		}
		return NewObjectLiteral(fields), nil
	case NodeFunctionLiteral:
		params, err := argumentsField(node, "params")
		if err != nil {
			return nil, err
		}
		body, err := requiredExpression(node, "body")
		if err != nil {
			return nil, err
		}
		return NewFunctionLiteral(params, body), nil
	case NodeBreakLiteral:
		value, err := optionalExpression(node, "value")
		if err != nil {
			return nil, err
		}
		return NewBreakLiteral(value), nil
	case NodeReturnLiteral:
		value, err := optionalExpression(node, "value")
		if err != nil {
			return nil, err
		}
		return NewReturnLiteral(value), nil
	case NodeIndexExpression:
		target, err := requiredExpression(node, "target")
		if err != nil {
			return nil, err
		}
		index, err := requiredExpression(node, "index")
		if err != nil {
			return nil, err
		}
		return NewIndexExpression(target, index), nil
	case NodeUnaryExpression:
		op, _ := node["operator"].(string)
		if !UnaryOperator(op).Valid() {
			return nil, fmt.Errorf("unknown unary operator %q", op)
		}
		operand, err := requiredExpression(node, "operand")
		if err != nil {
			return nil, err
		}
		return NewUnaryExpression(UnaryOperator(op), operand), nil
	case NodeBinaryExpression:
		op, _ := node["operator"].(string)
		if !BinaryOperator(op).Valid() {
			return nil, fmt.Errorf("unknown binary operator %q", op)
		}
		left, err := requiredExpression(node, "left")
		if err != nil {
			return nil, err
		}
		right, err := requiredExpression(node, "right")
		if err != nil {
			return nil, err
		}
		return NewBinaryExpression(BinaryOperator(op), left, right), nil
	case NodeBlockExpression:
		statements, err := expressionList(node, "statements")
		if err != nil {
			return nil, err
		}
		result, err := optionalExpression(node, "result")
		if err != nil {
			return nil, err
		}
		return NewBlockExpression(statements, result), nil
	case NodeScopeExpression:
		body, err := requiredExpression(node, "body")
		if err != nil {
			return nil, err
		}
		return NewScopeExpression(body), nil
	case NodeArguments:
		items, err := expressionList(node, "items")
		if err != nil {
			return nil, err
		}
		return NewArguments(items), nil
	case NodeSpreadExpression:
		value, err := requiredExpression(node, "value")
		if err != nil {
			return nil, err
		}
		return NewSpreadExpression(value), nil
	case NodeRangeExpression:
		from, err := requiredExpression(node, "from")
		if err != nil {
			return nil, err
		}
		to, err := requiredExpression(node, "to")
		if err != nil {
			return nil, err
		}
		step, err := optionalExpression(node, "step")
		if err != nil {
			return nil, err
		}
		return NewRangeExpression(from, to, step), nil
	case NodeIfExpression:
		condition, err := requiredExpression(node, "condition")
		if err != nil {
			return nil, err
		}
		then, err := requiredExpression(node, "then")
		if err != nil {
			return nil, err
		}
		otherwise, err := optionalExpression(node, "else")
		if err != nil {
			return nil, err
		}
		return NewIfExpression(condition, then, otherwise), nil
	case NodeImportExpression:
		path, err := requiredExpression(node, "path")
		if err != nil {
			return nil, err
		}
		return NewImportExpression(path), nil
	case NodeWhileLoop:
		condition, err := requiredExpression(node, "condition")
		if err != nil {
			return nil, err
		}
		body, err := requiredExpression(node, "body")
		if err != nil {
			return nil, err
		}
		collect, _ := node["collect"].(bool)
		return NewWhileLoop(condition, body, collect), nil
	case NodeForLoop:
		args, err := argumentsField(node, "args")
		if err != nil {
			return nil, err
		}
		body, err := requiredExpression(node, "body")
		if err != nil {
			return nil, err
		}
		collect, _ := node["collect"].(bool)
		return NewForLoop(args, body, collect), nil
	case NodeFunctionCall:
		callee, err := requiredExpression(node, "callee")
		if err != nil {
			return nil, err
		}
		args, err := argumentsField(node, "args")
		if err != nil {
			return nil, err
		}
		return NewFunctionCall(callee, args), nil
	case NodeNativeCall:
		name, err := stringField(node, "name")
		if err != nil {
			return nil, err
		}
		args, err := argumentsField(node, "args")
		if err != nil {
			return nil, err
		}
		return NewNativeCall(name, args), nil
	case NodeValueLiteral:
		return nil, fmt.Errorf("ValueLiteral cannot be decoded")
	case "":
		return nil, fmt.Errorf("node is missing its type")
	default:
		return nil, fmt.Errorf("unsupported node type %q", typ)
	}
}

func stringField(node map[string]any, field string) (string, error) {
	val, ok := node[field].(string)
	if !ok {
		return "", fmt.Errorf("%v: field %q must be a string", node["type"], field)
	}
	return val, nil
}

func requiredExpression(node map[string]any, field string) (Expression, error) {
	raw, ok := node[field]
	if !ok || raw == nil {
		return nil, fmt.Errorf("%v: missing field %q", node["type"], field)
	}
	expr, err := DecodeExpression(raw)
	if err != nil {
		return nil, fmt.Errorf("%v.%s: %w", node["type"], field, err)
	}
	return expr, nil
}

func optionalExpression(node map[string]any, field string) (Expression, error) {
	if raw, ok := node[field]; !ok || raw == nil {
		return nil, nil
	}
	return requiredExpression(node, field)
}

func expressionList(node map[string]any, field string) ([]Expression, error) {
	raw, ok := node[field]
	if !ok || raw == nil {
		return nil, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%v: field %q must be a list", node["type"], field)
	}
	exprs := make([]Expression, 0, len(items))
	for i, item := range items {
		expr, err := DecodeExpression(item)
		if err != nil {
			return nil, fmt.Errorf("%v.%s[%d]: %w", node["type"], field, i, err)
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

// argumentsField accepts either an Arguments node or a bare list of items.
func argumentsField(node map[string]any, field string) (*Arguments, error) {
	switch raw := node[field].(type) {
	case nil:
		return NewArguments(nil), nil
	case []any:
		items, err := expressionList(node, field)
		if err != nil {
			return nil, err
		}
		return NewArguments(items), nil
	case map[string]any:
		decoded, err := DecodeNode(raw)
		if err != nil {
			return nil, fmt.Errorf("%v.%s: %w", node["type"], field, err)
		}
		args, ok := decoded.(*Arguments)
		if !ok {
			return nil, fmt.Errorf("%v.%s: expected Arguments, got %s", node["type"], field, decoded.NodeType())
		}
		return args, nil
	default:
		return nil, fmt.Errorf("%v: invalid %q entry %T", node["type"], field, raw)
	}
}

func int64Value(raw any) (int64, error) {
	switch v := raw.(type) {
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return 0, fmt.Errorf("%d overflows int64", v)
		}
		return int64(v), nil
	case uint:
		if uint64(v) > math.MaxInt64 {
			return 0, fmt.Errorf("%d overflows int64", v)
		}
		return int64(v), nil
	case float64:
		if v != math.Trunc(v) || math.Abs(v) > 1<<53 {
			return 0, fmt.Errorf("%v is not an exact integer", v)
		}
		return int64(v), nil
	case json.Number:
		return v.Int64()
	default:
		return 0, fmt.Errorf("expected integer, got %T", raw)
	}
}

func float64Value(raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case json.Number:
		return v.Float64()
	default:
		i, err := int64Value(raw)
		if err != nil {
			return 0, fmt.Errorf("expected number, got %T", raw)
		}
		return float64(i), nil
	}
}
