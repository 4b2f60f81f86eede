package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
)

// StageFunc is the uniform calling convention every resolved stage is adapted to.
type StageFunc func(ctx context.Context, args ...any) (any, error)

var (
	contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errorType   = reflect.TypeOf((*error)(nil)).Elem()
)

// call invokes s, turning a panic inside the stage into an error.
func (s StageFunc) call(ctx context.Context, args ...any) (res any, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, fmt.Errorf("stage panicked: %v", r)
		}
	}()
	return s(ctx, args...)
}

// asStage adapts v to a StageFunc when v is a function whose results are
// (), (T), (error) or (T, error). A leading context.Context parameter is
// filled with the call context.
func asStage(v any) (StageFunc, bool) {
	switch fn := v.(type) {
	case nil:
		return nil, false
	case StageFunc:
		return fn, fn != nil
	case func(context.Context, ...any) (any, error):
		return fn, fn != nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Func || rv.IsNil() {
		return nil, false
	}
	t := rv.Type()
	switch t.NumOut() {
	case 0, 1:
	case 2:
		if t.Out(1) != errorType {
			return nil, false
		}
	default:
		return nil, false
	}

	return func(ctx context.Context, args ...any) (any, error) {
		return callReflect(ctx, rv, args)
	}, true
}

func callReflect(ctx context.Context, fn reflect.Value, args []any) (any, error) {
	t := fn.Type()
	in := make([]reflect.Value, 0, t.NumIn()+len(args))

	offset := 0
	if t.NumIn() > 0 && t.In(0) == contextType {
		if ctx == nil {
			ctx = context.Background()
		}
		in = append(in, reflect.ValueOf(ctx))
		offset = 1
	}

	fixed := t.NumIn()
	if t.IsVariadic() {
		fixed--
	}
	for i := offset; i < fixed; i++ {
		var arg any
		if i-offset < len(args) {
			arg = args[i-offset]
		}
		v, err := convertArg(arg, t.In(i))
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i-offset, err)
		}
		in = append(in, v)
	}
	if t.IsVariadic() {
		elem := t.In(t.NumIn() - 1).Elem()
		for j := fixed - offset; j < len(args); j++ {
			v, err := convertArg(args[j], elem)
			if err != nil {
				return nil, fmt.Errorf("argument %d: %w", j, err)
			}
			in = append(in, v)
		}
	}

	out := fn.Call(in)
	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		if t.Out(0) == errorType {
			return nil, asError(out[0])
		}
		return out[0].Interface(), nil
	default:
		if err := asError(out[1]); err != nil {
			return nil, err
		}
		return out[0].Interface(), nil
	}
}

func asError(v reflect.Value) error {
	if v.IsNil() {
		return nil
	}
	err, _ := v.Interface().(error)
	return err
}

// convertArg makes arg usable as a parameter of type t. Values that are not
// directly assignable are converted through their JSON encoding.
func convertArg(arg any, t reflect.Type) (reflect.Value, error) {
	if arg == nil {
		return reflect.Zero(t), nil
	}
	av := reflect.ValueOf(arg)
	if av.Type().AssignableTo(t) {
		return av, nil
	}

	data, err := json.Marshal(arg)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("cannot encode %T: %w", arg, err)
	}
	ptr := reflect.New(t)
	if err := json.Unmarshal(data, ptr.Interface()); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return reflect.Value{}, fmt.Errorf("cannot use %T as %s", arg, t)
		}
		return reflect.Value{}, err
	}
	return ptr.Elem(), nil
}
