package builder

import (
	"math/big"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/toolchaingo/internal/builderr"
	"github.com/specialistvlad/toolchaingo/internal/scope"
	"github.com/specialistvlad/toolchaingo/internal/substitution"
	"github.com/specialistvlad/toolchaingo/internal/toolchain"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// readField looks name up in s and, when present, decodes it and hands the
// result to set. An absent field is not an error.
func readField[T any](s *scope.Scope, name string, decode func(name string, v *scope.Value) (T, error), set func(T)) error {
	v, ok := s.GetValue(name, true)
	if !ok {
		return nil
	}
	out, err := decode(name, v)
	if err != nil {
		return err
	}
	set(out)
	return nil
}

func typeMismatch(name string, v *scope.Value, want string) error {
	got := "null"
	if !v.Value.IsNull() {
		got = v.Value.Type().FriendlyName()
	}
	return builderr.New(builderr.TypeMismatch, "Incorrect type.").
		WithDetail("This value was a %s, not a %s.", got, want).
		WithField(name).
		At(&v.Range)
}

func checkType(name string, v *scope.Value, want cty.Type) error {
	if v.Value.IsNull() || !v.Value.IsWhollyKnown() || !v.Value.Type().Equals(want) {
		return typeMismatch(name, v, want.FriendlyName())
	}
	return nil
}

func decodeBool(name string, v *scope.Value) (bool, error) {
	if err := checkType(name, v, cty.Bool); err != nil {
		return false, err
	}
	var out bool
	if err := gocty.FromCtyValue(v.Value, &out); err != nil {
		return false, typeMismatch(name, v, "bool")
	}
	return out, nil
}

func decodeString(name string, v *scope.Value) (string, error) {
	if err := checkType(name, v, cty.String); err != nil {
		return "", err
	}
	var out string
	if err := gocty.FromCtyValue(v.Value, &out); err != nil {
		return "", typeMismatch(name, v, "string")
	}
	return out, nil
}

// decodeInt accepts a whole number. Values outside int64 fail with
// ValueOutOfRange.
func decodeInt(name string, v *scope.Value) (int64, error) {
	if err := checkType(name, v, cty.Number); err != nil {
		return 0, err
	}
	bf := v.Value.AsBigFloat()
	if !bf.IsInt() {
		return 0, typeMismatch(name, v, "integer")
	}
	i, acc := bf.Int64()
	if acc != big.Exact {
		return 0, builderr.New(builderr.ValueOutOfRange, "Value out of range.").
			WithDetail("%s does not fit in a 64-bit integer.", bf.Text('f', 0)).
			WithField(name).
			At(&v.Range)
	}
	return i, nil
}

// decodeStringList accepts a list or tuple whose elements are all strings.
func decodeStringList(name string, v *scope.Value) ([]string, error) {
	ty := v.Value.Type()
	if v.Value.IsNull() || !v.Value.IsWhollyKnown() || !(ty.IsListType() || ty.IsTupleType()) {
		return nil, typeMismatch(name, v, "list of string")
	}
	for it := v.Value.ElementIterator(); it.Next(); {
		_, elem := it.Element()
		if elem.IsNull() || !elem.Type().Equals(cty.String) {
			return nil, typeMismatch(name, v, "list of string")
		}
	}
	if v.Value.LengthInt() == 0 {
		return []string{}, nil
	}
	list, err := convert.Convert(v.Value, cty.List(cty.String))
	if err != nil {
		return nil, typeMismatch(name, v, "list of string")
	}
	var out []string
	if err := gocty.FromCtyValue(list, &out); err != nil {
		return nil, typeMismatch(name, v, "list of string")
	}
	return out, nil
}

func readBool(s *scope.Scope, name string, set func(bool)) error {
	return readField(s, name, decodeBool, set)
}

func readString(s *scope.Scope, name string, set func(string)) error {
	return readField(s, name, decodeString, set)
}

func readInt(s *scope.Scope, name string, set func(int64, *scope.Value) error) error {
	v, ok := s.GetValue(name, true)
	if !ok {
		return nil
	}
	i, err := decodeInt(name, v)
	if err != nil {
		return err
	}
	return set(i, v)
}

// readPattern parses a string field into a pattern and checks every
// placeholder against validator.
func readPattern(s *scope.Scope, name string, validator substitution.Validator, set func(substitution.Pattern)) error {
	return readField(s, name, func(name string, v *scope.Value) (substitution.Pattern, error) {
		raw, err := decodeString(name, v)
		if err != nil {
			return substitution.Pattern{}, err
		}
		p, err := substitution.Parse(raw)
		if err != nil {
			return substitution.Pattern{}, blame(err, name, v)
		}
		if err := substitution.ValidateList(p.RequiredKinds(), validator, name); err != nil {
			return substitution.Pattern{}, blame(err, name, v)
		}
		return p, nil
	}, set)
}

// readOutputs reads the mandatory outputs list. A missing field is blamed on
// the tool block.
func readOutputs(s *scope.Scope, validator substitution.Validator, blockRange hcl.Range, set func(substitution.List)) error {
	const name = "outputs"
	v, ok := s.GetValue(name, true)
	if !ok {
		return builderr.New(builderr.MissingRequiredField, `"outputs" must be specified for this tool.`).
			WithField(name).
			At(&blockRange)
	}
	raw, err := decodeStringList(name, v)
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		return builderr.New(builderr.EmptyList, "Outputs list is empty.").
			WithDetail("I need some outputs.").
			WithField(name).
			At(&v.Range)
	}
	list, err := substitution.ParseList(raw)
	if err != nil {
		return blame(err, name, v)
	}
	if err := substitution.ValidateList(list.RequiredKinds(), validator, name); err != nil {
		return blame(err, name, v)
	}
	set(list)
	return nil
}

func readOutputExtension(s *scope.Scope, set func(string)) error {
	const name = "default_output_extension"
	v, ok := s.GetValue(name, true)
	if !ok {
		return nil
	}
	ext, err := decodeString(name, v)
	if err != nil {
		return err
	}
	if ext == "" {
		return nil
	}
	if ext[0] != '.' {
		return builderr.New(builderr.InvalidExtensionFormat, "default_output_extension must begin with a '.'").
			WithDetail("Got %q.", ext).
			WithField(name).
			At(&v.Range)
	}
	set(ext)
	return nil
}

func readPrecompiledHeaderType(s *scope.Scope, set func(toolchain.PrecompiledHeaderType)) error {
	const name = "precompiled_header_type"
	return readField(s, name, func(name string, v *scope.Value) (toolchain.PrecompiledHeaderType, error) {
		raw, err := decodeString(name, v)
		if err != nil {
			return toolchain.PCHNone, err
		}
		switch raw {
		case "":
			return toolchain.PCHNone, nil
		case "gcc":
			return toolchain.PCHGCC, nil
		case "msvc":
			return toolchain.PCHMSVC, nil
		}
		return toolchain.PCHNone, builderr.New(builderr.InvalidEnumValue, "Invalid precompiled_header_type").
			WithDetail(`Must either be empty, "gcc", or "msvc".`).
			WithField(name).
			At(&v.Range)
	}, set)
}

func readDepsFormat(s *scope.Scope, set func(toolchain.DepsFormat)) error {
	const name = "depsformat"
	return readField(s, name, func(name string, v *scope.Value) (toolchain.DepsFormat, error) {
		raw, err := decodeString(name, v)
		if err != nil {
			return toolchain.DepsFormatNone, err
		}
		switch raw {
		case "gcc":
			return toolchain.DepsFormatGCC, nil
		case "msvc":
			return toolchain.DepsFormatMSVC, nil
		}
		return toolchain.DepsFormatNone, builderr.New(builderr.InvalidEnumValue, `Deps format must be "gcc" or "msvc".`).
			WithDetail("Got %q.", raw).
			WithField(name).
			At(&v.Range)
	}, set)
}

// blame attaches the field and the value's location to a parser or
// validator error.
func blame(err error, name string, v *scope.Value) error {
	if be, ok := err.(*builderr.Error); ok {
		if be.Field == "" {
			be.WithField(name)
		}
		return be.At(&v.Range)
	}
	return err
}
