package grading_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/thinkfirst.net/internal/core/services/grading"
	"gitlab.com/thinkfirst.net/internal/domain"
)

const pythonTwoSum = `def twoSum(nums, target):
    seen = {}
    for i, n in enumerate(nums):
        if target - n in seen:
            return [seen[target - n], i]
        seen[n] = i
`

func TestWrapPythonFunction(t *testing.T) {
	wrapped := grading.Wrap(pythonTwoSum, domain.LanguagePython)

	require.True(t, strings.HasPrefix(wrapped, pythonTwoSum), "submission must be kept verbatim")
	harness := strings.TrimPrefix(wrapped, pythonTwoSum)
	assert.Contains(t, harness, "input()")
	assert.Contains(t, harness, "twoSum(*_args)")
	assert.Contains(t, harness, "print(_json.dumps(_result))")
}

func TestWrapJavaScriptFunction(t *testing.T) {
	code := "function add(a, b) { return a + b; }"
	wrapped := grading.Wrap(code, domain.LanguageJavaScript)

	require.True(t, strings.HasPrefix(wrapped, code))
	assert.Contains(t, wrapped, "readFileSync(0, 'utf8')")
	assert.Contains(t, wrapped, "console.log(JSON.stringify(__result))")
	assert.Contains(t, wrapped, "add(JSON.parse(__stdin))")
}

func TestWrapJava(t *testing.T) {
	method := "public static int sum(int[] a) { int s = 0; for (int x : a) s += x; return s; }"
	wrapped := grading.Wrap(method, domain.LanguageJava)
	assert.Contains(t, wrapped, "public class Main")
	assert.Contains(t, wrapped, method)
	assert.Contains(t, wrapped, "System.out.println(sum(arr));")

	withClass := "public class Solution { public static int sum(int[] a) { return 0; } }"
	assert.Equal(t, withClass, grading.Wrap(withClass, domain.LanguageJava))
}

func TestWrapCpp(t *testing.T) {
	fn := "int square(int x) { return x * x; }"
	wrapped := grading.Wrap(fn, domain.LanguageCpp)
	assert.Contains(t, wrapped, "#include <iostream>")
	assert.Contains(t, wrapped, fn)
	assert.Contains(t, wrapped, "cout << square(stoi(line)) << endl;")
}

// printing alone does not make code a full program, only reading input does
func TestWrapScaffoldsOutputOnlyFunction(t *testing.T) {
	python := "def add(a, b):\n    return a + b\nprint(add(1, 2))\n"
	wrapped := grading.Wrap(python, domain.LanguagePython)
	require.True(t, strings.HasPrefix(wrapped, python))
	assert.Contains(t, wrapped, "add(*_args)")
	assert.Contains(t, wrapped, "print(_json.dumps(_result))")

	js := "const add = (a,b)=>a+b;\nconsole.log(add(1,2));"
	wrapped = grading.Wrap(js, domain.LanguageJavaScript)
	require.True(t, strings.HasPrefix(wrapped, js))
	assert.Contains(t, wrapped, "readFileSync(0, 'utf8')")
	assert.Contains(t, wrapped, "add(JSON.parse(__stdin))")
}

func TestWrapLeavesProgramsAlone(t *testing.T) {
	cases := []struct {
		name string
		code string
		lang domain.Language
	}{
		{"reads and prints", "n = int(input())\nprint(n)\n", domain.LanguagePython},
		{"reads only", "def f(x):\n    return x\nf(input())\n", domain.LanguagePython},
		{"no function", "print(42)\n", domain.LanguagePython},
		{"javascript stdin", "process.stdin.on('data', d => console.log(d));", domain.LanguageJavaScript},
		{"cpp with main", "int twice(int x) { return 2 * x; }\nint main() { return twice(1); }", domain.LanguageCpp},
		{"c is never wrapped", "int twice(int x) { return 2 * x; }", domain.LanguageC},
		{"unknown language", "def f(x): return x", domain.Language("ruby")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.code, grading.Wrap(tc.code, tc.lang))
		})
	}
}

func TestWrapIsIdempotent(t *testing.T) {
	cases := map[domain.Language]string{
		domain.LanguagePython:     pythonTwoSum,
		domain.LanguageJavaScript: "const double = (x) => x * 2;",
		domain.LanguageJava:       "public static int id(int x) { return x; }",
		domain.LanguageCpp:        "int id(int x) { return x; }",
	}
	for lang, code := range cases {
		once := grading.Wrap(code, lang)
		assert.Equal(t, once, grading.Wrap(once, lang), lang.String())
	}
}
