package scenario_test

import (
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/graph-guard/emplace/pkg/scenario"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestRead(t *testing.T) {
	for _, td := range []struct {
		name   string
		input  string
		expect *scenario.Scenario
	}{
		{
			name: "full",
			input: lines(
				"entries:",
				"  foo: 9",
				"  alpha: -1",
				"operations:",
				"  - key: foo",
				"    insert: 7",
				"    update: mul 3",
				"  - key: bar",
				"    insert: 7",
				"  - key: alpha",
				"  - key: baz",
				"    update: add 10",
			),
			expect: &scenario.Scenario{
				Entries: []scenario.Entry{
					{Key: "foo", Value: 9},
					{Key: "alpha", Value: -1},
				},
				Operations: []scenario.Operation{
					{
						Key:    "foo",
						Insert: ptr(int64(7)),
						Update: &scenario.Update{
							Operator: scenario.OperatorMul,
							Operand:  3,
						},
					},
					{Key: "bar", Insert: ptr(int64(7))},
					{Key: "alpha"},
					{
						Key: "baz",
						Update: &scenario.Update{
							Operator: scenario.OperatorAdd,
							Operand:  10,
						},
					},
				},
			},
		},
		{
			name: "no_entries",
			input: lines(
				"operations:",
				"  - key: a",
				"    insert: 0",
			),
			expect: &scenario.Scenario{
				Operations: []scenario.Operation{
					{Key: "a", Insert: ptr(int64(0))},
				},
			},
		},
		{
			name: "null_insert",
			input: lines(
				"operations:",
				"  - key: a",
				"    insert:",
				"  - key: b",
				"    insert: 0x10",
			),
			expect: &scenario.Scenario{
				Operations: []scenario.Operation{
					{Key: "a"},
					{Key: "b", Insert: ptr(int64(16))},
				},
			},
		},
		{
			name: "null_entries",
			input: lines(
				"entries:",
				"operations: []",
			),
			expect: &scenario.Scenario{
				Operations: []scenario.Operation{},
			},
		},
	} {
		t.Run(td.name, func(t *testing.T) {
			s, err := scenario.Read(strings.NewReader(td.input), "test.yaml")
			require.NoError(t, err)
			require.Equal(t, td.expect, s)
		})
	}
}

func TestReadFile(t *testing.T) {
	fsys := fstest.MapFS{
		"scenarios/a.yaml": &fstest.MapFile{Data: []byte(lines(
			"entries: {x: 1}",
			"operations:",
			"  - key: x",
			"    update: set 5",
		))},
	}
	s, err := scenario.ReadFile(fsys, "scenarios/a.yaml")
	require.NoError(t, err)
	require.Equal(t, []scenario.Entry{{Key: "x", Value: 1}}, s.Entries)
	require.Len(t, s.Operations, 1)
	require.Equal(t, "set 5", s.Operations[0].Update.String())

	_, err = scenario.ReadFile(fsys, "scenarios/missing.yaml")
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestReadError(t *testing.T) {
	for _, td := range []struct {
		name   string
		input  string
		expect error
	}{
		{
			name:   "empty",
			input:  "",
			expect: &scenario.ErrorMissing{FilePath: "test.yaml"},
		},
		{
			name:  "missing_operations",
			input: "entries: {a: 1}",
			expect: &scenario.ErrorMissing{
				FilePath: "test.yaml",
				Feature:  "operations",
			},
		},
		{
			name:  "missing_key",
			input: lines("operations:", "  - key: a", "  - insert: 1"),
			expect: &scenario.ErrorMissing{
				FilePath: "test.yaml",
				Feature:  "operations[1].key",
			},
		},
		{
			name:  "illegal_update",
			input: lines("operations:", "  - key: a", "    update: pow 2"),
			expect: &scenario.ErrorIllegal{
				FilePath: "test.yaml",
				Feature:  "operations[0].update",
				Message:  `unknown operator "pow"`,
			},
		},
		{
			name:  "duplicate_entry",
			input: lines("entries:", "  a: 1", "  a: 2", "operations: []"),
			expect: &scenario.ErrorIllegal{
				FilePath: "test.yaml",
				Feature:  "entries.a",
				Message:  "duplicate key",
			},
		},
		{
			name:  "float_insert",
			input: lines("operations:", "  - key: a", "    insert: 1.5"),
			expect: &scenario.ErrorIllegal{
				FilePath: "test.yaml",
				Feature:  "operations[0].insert",
				Message:  `line 3: expected an integer, got "1.5"`,
			},
		},
		{
			name:  "float_entry",
			input: lines("entries: {a: 2.9}", "operations: []"),
			expect: &scenario.ErrorIllegal{
				FilePath: "test.yaml",
				Feature:  "entries.a",
				Message:  `line 1: expected an integer, got "2.9"`,
			},
		},
		{
			name:  "sequence_insert",
			input: lines("operations:", "  - key: a", "    insert: [1]"),
			expect: &scenario.ErrorIllegal{
				FilePath: "test.yaml",
				Feature:  "operations[0].insert",
				Message:  `line 3: expected an integer, got ""`,
			},
		},
		{
			name:  "entries_not_mapping",
			input: lines("entries: [1, 2]", "operations: []"),
			expect: &scenario.ErrorIllegal{
				FilePath: "test.yaml",
				Feature:  "entries",
				Message:  "expected a mapping",
			},
		},
	} {
		t.Run(td.name, func(t *testing.T) {
			s, err := scenario.Read(strings.NewReader(td.input), "test.yaml")
			require.Nil(t, s)
			require.Equal(t, td.expect, err)
		})
	}
}

func TestReadErrorIllegalValue(t *testing.T) {
	for _, input := range []string{
		lines("entries: {a: text}", "operations: []"),
		lines("operations: []", "unknown: field"),
		lines("operations:", "  - key: a", "    insert: 1.5"),
		lines("operations:", "  - key: a", "    insert: \"7\""),
		lines("entries: {a: 2.9}", "operations: []"),
	} {
		_, err := scenario.Read(strings.NewReader(input), "test.yaml")
		var errIllegal *scenario.ErrorIllegal
		require.ErrorAs(t, err, &errIllegal, input)
		require.Equal(t, "test.yaml", errIllegal.FilePath)
		require.NotEmpty(t, errIllegal.Message)
	}
}

func TestErrorMessages(t *testing.T) {
	require.Equal(t, "missing s.yaml",
		scenario.ErrorMissing{FilePath: "s.yaml"}.Error())
	require.Equal(t, "missing operations in s.yaml",
		scenario.ErrorMissing{FilePath: "s.yaml", Feature: "operations"}.Error())
	require.Equal(t, "illegal s.yaml: bad",
		scenario.ErrorIllegal{FilePath: "s.yaml", Message: "bad"}.Error())
	require.Equal(t, "illegal entries in s.yaml: bad",
		scenario.ErrorIllegal{
			FilePath: "s.yaml",
			Feature:  "entries",
			Message:  "bad",
		}.Error())
}

func lines(l ...string) string {
	return strings.Join(l, "\n") + "\n"
}
