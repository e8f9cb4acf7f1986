package kanren

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ichiban/kanren/engine"
)

// Solutions is the result of a query. Everytime the Next method is called, it searches for the next solution.
// By calling the Scan method, you can retrieve the content of the solution.
type Solutions struct {
	id     uuid.UUID
	names  []string
	sols   *engine.Solutions
	logger *zap.Logger
	start  time.Time
	count  int
	err    error
	closed bool
}

// ID returns the id of the query which appears in the logs.
func (s *Solutions) ID() uuid.UUID {
	return s.id
}

// Vars returns variable names.
func (s *Solutions) Vars() []string {
	return s.names
}

// Next prepares the next solution for reading with the Scan method. It returns true if it finds another solution,
// or false if there's no further solutions or if there's an error.
func (s *Solutions) Next() bool {
	if s.closed || s.err != nil || s.sols == nil {
		return false
	}
	if !s.sols.Next() {
		s.err = s.sols.Err()
		return false
	}
	s.count++
	return true
}

// Current returns the reified terms of the current solution in the order of Vars.
func (s *Solutions) Current() []engine.Term {
	if s.sols == nil {
		return nil
	}
	switch len(s.names) {
	case 0:
		return nil
	case 1:
		return []engine.Term{s.sols.Current()}
	default:
		ts, _ := engine.Slice(s.sols.Current(), nil)
		return ts
	}
}

// Scan copies the variable values of the current solution into out.
// out is either a map[string]engine.Term, a map[string]interface{}, or a pointer to a struct.
// Struct fields are matched with the variables by the field tag `kanren:"name"` or else by the field name.
// Variables left free in the solution are skipped.
func (s *Solutions) Scan(out interface{}) error {
	ts := s.Current()
	if len(ts) != len(s.names) {
		return errors.New("no current solution")
	}

	o := reflect.ValueOf(out)
	switch o.Kind() {
	case reflect.Map:
		if o.IsNil() {
			return errors.New("nil map")
		}
		vt := o.Type().Elem()
		for i, n := range s.names {
			if isFree(ts[i]) {
				continue
			}
			v, err := convert(ts[i], vt)
			if err != nil {
				return fmt.Errorf("%s: %w", n, err)
			}
			o.SetMapIndex(reflect.ValueOf(n), v)
		}
		return nil
	case reflect.Ptr:
		o = o.Elem()
		if o.Kind() != reflect.Struct {
			return fmt.Errorf("invalid kind: %s", o.Kind())
		}
		fields := map[string]int{}
		t := o.Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			name := f.Name
			if tag, ok := f.Tag.Lookup("kanren"); ok {
				name = tag
			}
			fields[name] = i
		}
		for i, n := range s.names {
			fi, ok := fields[n]
			if !ok || isFree(ts[i]) {
				continue
			}
			f := o.Field(fi)
			v, err := convert(ts[i], f.Type())
			if err != nil {
				return fmt.Errorf("%s: %w", n, err)
			}
			f.Set(v)
		}
		return nil
	default:
		return fmt.Errorf("invalid kind: %s", o.Kind())
	}
}

// Err returns the error if exists.
func (s *Solutions) Err() error {
	return s.err
}

// Close closes the Solutions and terminates the search for other solutions.
func (s *Solutions) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.sols != nil {
		_ = s.sols.Close()
	}
	if s.err != nil {
		s.logger.Warn("query failed", zap.Int("answers", s.count), zap.Duration("elapsed", time.Since(s.start)), zap.Error(s.err))
		return nil
	}
	s.logger.Debug("query finished", zap.Int("answers", s.count), zap.Duration("elapsed", time.Since(s.start)))
	return nil
}

// String returns the current solution in the form of `X = a, Y = [b, c]`.
func (s *Solutions) String() string {
	ts := s.Current()
	if len(ts) != len(s.names) {
		return ""
	}
	ls := make([]string, 0, len(s.names))
	for i, n := range s.names {
		if isFree(ts[i]) {
			continue
		}
		ls = append(ls, fmt.Sprintf("%s = %s", n, ts[i]))
	}
	return strings.Join(ls, ", ")
}

func isFree(t engine.Term) bool {
	a, ok := t.(engine.Atom)
	if !ok {
		return false
	}
	_, ok = a.Value().(engine.Placeholder)
	return ok
}

var (
	termType    = reflect.TypeOf((*engine.Term)(nil)).Elem()
	decimalType = reflect.TypeOf(engine.Decimal{})
)

// convert converts a reified term into a Go value of type typ.
func convert(t engine.Term, typ reflect.Type) (reflect.Value, error) {
	if typ == termType {
		return reflect.ValueOf(&t).Elem(), nil
	}

	switch t := t.(type) {
	case engine.Atom:
		v := reflect.ValueOf(t.Value())
		if t == engine.Nil {
			v = reflect.MakeSlice(reflect.SliceOf(termType), 0, 0)
		}
		if d, ok := t.Value().(engine.Decimal); ok && typ != decimalType {
			return convertDecimal(d, typ)
		}
		switch {
		case !v.IsValid():
			return reflect.Zero(typ), nil
		case typ.Kind() == reflect.Slice && t == engine.Nil:
			return reflect.MakeSlice(typ, 0, 0), nil
		case v.Type().AssignableTo(typ):
			r := reflect.New(typ).Elem()
			r.Set(v)
			return r, nil
		case typ.Kind() == reflect.String:
			return reflect.ValueOf(t.String()).Convert(typ), nil
		}
	case *engine.Pair:
		ts, err := engine.Slice(t, nil)
		if err != nil {
			return reflect.Value{}, err
		}
		switch typ.Kind() {
		case reflect.Slice:
			r := reflect.MakeSlice(typ, len(ts), len(ts))
			for i, e := range ts {
				v, err := convert(e, typ.Elem())
				if err != nil {
					return reflect.Value{}, fmt.Errorf("element %d: %w", i, err)
				}
				r.Index(i).Set(v)
			}
			return r, nil
		case reflect.Interface:
			r := reflect.MakeSlice(reflect.SliceOf(typ), len(ts), len(ts))
			for i, e := range ts {
				v, err := convert(e, typ)
				if err != nil {
					return reflect.Value{}, fmt.Errorf("element %d: %w", i, err)
				}
				r.Index(i).Set(v)
			}
			return r, nil
		}
	}
	return reflect.Value{}, fmt.Errorf("can't convert %s to %s", t, typ)
}

func convertDecimal(d engine.Decimal, typ reflect.Type) (reflect.Value, error) {
	r := reflect.New(typ).Elem()
	switch typ.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := d.Apd().Int64()
		if err != nil {
			return reflect.Value{}, err
		}
		if r.OverflowInt(i) {
			return reflect.Value{}, fmt.Errorf("%s overflows %s", d, typ)
		}
		r.SetInt(i)
	case reflect.Float32, reflect.Float64:
		f, err := d.Apd().Float64()
		if err != nil {
			return reflect.Value{}, err
		}
		r.SetFloat(f)
	case reflect.String:
		r.SetString(d.String())
	case reflect.Interface:
		if !decimalType.AssignableTo(typ) {
			return reflect.Value{}, fmt.Errorf("can't convert %s to %s", d, typ)
		}
		r.Set(reflect.ValueOf(d))
	default:
		return reflect.Value{}, fmt.Errorf("can't convert %s to %s", d, typ)
	}
	return r, nil
}
