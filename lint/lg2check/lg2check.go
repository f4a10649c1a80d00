// Package lg2check 在构建阶段检查日志调用：平铺参数的形状、字段名、格式标志
// 以及值的静态类型。运行期同样的规则由 core.Walk 与 core.Convert 兜底，
// 这里把它们提前为 vet 错误。
//
//	go vet -vettool=$(which lg2check) ./...
package lg2check

import (
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"

	"github.com/iuboy/bmclog/core"
	"github.com/iuboy/bmclog/flags"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
	"golang.org/x/tools/go/types/typeutil"
)

const (
	rootPath  = "github.com/iuboy/bmclog"
	corePath  = rootPath + "/core"
	flagsPath = rootPath + "/flags"
)

const doc = `check bmclog logging calls

lg2check reports, for the flat "NAME", [flags,] value argument API and the
typed field constructors: values without a header, headers without a value,
fields nested in a value slot, non-constant or invalid headers, non-constant
or conflicting flags, flags that the value type does not accept, and value
types that have no rendering rule.`

var Analyzer = &analysis.Analyzer{
	Name:     "lg2check",
	Doc:      doc,
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

// walkers 平铺参数 API 及其第一个平铺参数的位置
var walkers = map[string]int{
	rootPath + ".Logw":                   2,
	rootPath + ".Emergencyw":             1,
	rootPath + ".Alertw":                 1,
	rootPath + ".Criticalw":              1,
	rootPath + ".Errorw":                 1,
	rootPath + ".Warningw":               1,
	rootPath + ".Noticew":                1,
	rootPath + ".Infow":                  1,
	rootPath + ".Debugw":                 1,
	"(*" + corePath + ".Logger).Logw":   2,
	"(*" + corePath + ".Logger).LogwAt": 3,
	corePath + ".Walk":                   0,
}

// flagged 带格式标志的构造函数及其值类别
var flagged = map[string]kind{
	"UintF": unsignedKind,
	"IntF":  signedKind,
}

var constructors = map[string]bool{
	"Uint": true, "UintF": true, "Int": true, "IntF": true, "Bool": true,
	"Float64": true, "String": true, "Path": true, "Pointer": true,
	"Err": true, "Enum": true,
}

func run(pass *analysis.Pass) (any, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	insp.Preorder([]ast.Node{(*ast.CallExpr)(nil)}, func(n ast.Node) {
		call := n.(*ast.CallExpr)
		fn, ok := typeutil.Callee(pass.TypesInfo, call).(*types.Func)
		if !ok || fn.Pkg() == nil {
			return
		}
		fn = fn.Origin()

		if start, ok := walkers[fn.FullName()]; ok {
			// args... 展开的切片无法静态检查
			if call.Ellipsis.IsValid() || len(call.Args) < start {
				return
			}
			checkWalk(pass, call.Args[start:])
			return
		}

		path := fn.Pkg().Path()
		if (path == corePath || path == rootPath) && constructors[fn.Name()] && isPlainFunc(fn) {
			checkConstructor(pass, fn.Name(), call)
		}
	})
	return nil, nil
}

func isPlainFunc(fn *types.Func) bool {
	sig, ok := fn.Type().(*types.Signature)
	return ok && sig.Recv() == nil
}

func checkConstructor(pass *analysis.Pass, name string, call *ast.CallExpr) {
	if len(call.Args) == 0 {
		return
	}
	if text, ok := constString(pass, call.Args[0]); ok {
		if err := core.ValidateHeader(text); err != nil {
			pass.Reportf(call.Args[0].Pos(), "%v", err)
		}
	}

	k, ok := flagged[name]
	if !ok || len(call.Args) < 2 {
		return
	}
	f, ok := constFlags(pass, call.Args[1])
	if !ok {
		pass.Reportf(call.Args[1].Pos(), "flags must be a constant expression")
		return
	}
	if err := checkFlags(k, f); err != nil {
		pass.Reportf(call.Args[1].Pos(), "%v", err)
	}
}

func checkWalk(pass *analysis.Pass, args []ast.Expr) {
	for i := 0; i < len(args); {
		t := pass.TypesInfo.TypeOf(args[i])
		if isNamed(t, corePath, "Field") {
			i++
			continue
		}
		if !isString(t) {
			pass.Reportf(args[i].Pos(), "value of type %s without a preceding header", typeString(pass, t))
			return
		}

		header := args[i]
		name, ok := constString(pass, header)
		if !ok {
			pass.Reportf(header.Pos(), "header must be a constant string")
			return
		}
		if err := core.ValidateHeader(name); err != nil {
			pass.Reportf(header.Pos(), "%v", err)
		}

		j := i + 1
		f := flags.None
		var flagExpr ast.Expr
		if j < len(args) && isNamed(pass.TypesInfo.TypeOf(args[j]), flagsPath, "Set") {
			flagExpr = args[j]
			cf, ok := constFlags(pass, flagExpr)
			if !ok {
				pass.Reportf(flagExpr.Pos(), "flags for %q must be a constant expression", name)
				return
			}
			f = cf
			j++
		}
		if j >= len(args) {
			pass.Reportf(header.Pos(), "header %q has no value", name)
			return
		}

		value := args[j]
		vt := pass.TypesInfo.TypeOf(value)
		k := classify(vt)
		switch k {
		case fieldKind:
			pass.Reportf(value.Pos(), "field used as the value of %q", name)
			return
		case unsupportedKind:
			pass.Reportf(value.Pos(), "unsupported type %s for %q", typeString(pass, vt), name)
		default:
			if flagExpr != nil {
				if err := checkFlags(k, f); err != nil {
					pass.Reportf(flagExpr.Pos(), "%q: %v", name, err)
				}
			}
		}
		i = j + 1
	}
}

func checkFlags(k kind, f flags.Set) error {
	switch k {
	case unsignedKind:
		if err := flags.Prohibit(f, flags.Floating|flags.Signed|flags.Str); err != nil {
			return err
		}
		return flags.Validate(f)
	case signedKind:
		if err := flags.Prohibit(f, flags.Floating|flags.Unsigned|flags.Str); err != nil {
			return err
		}
		return flags.Validate(f)
	default:
		return flags.Prohibit(f, ^flags.None)
	}
}

func constString(pass *analysis.Pass, e ast.Expr) (string, bool) {
	tv, ok := pass.TypesInfo.Types[e]
	if !ok || tv.Value == nil || tv.Value.Kind() != constant.String {
		return "", false
	}
	return constant.StringVal(tv.Value), true
}

func constFlags(pass *analysis.Pass, e ast.Expr) (flags.Set, bool) {
	tv, ok := pass.TypesInfo.Types[e]
	if !ok || tv.Value == nil {
		return flags.None, false
	}
	v, exact := constant.Uint64Val(constant.ToInt(tv.Value))
	if !exact {
		return flags.None, false
	}
	return flags.Set(v), true
}

func typeString(pass *analysis.Pass, t types.Type) string {
	if t == nil {
		return "untyped nil"
	}
	return types.TypeString(t, types.RelativeTo(pass.Pkg))
}

func isNamed(t types.Type, pkg, name string) bool {
	if t == nil {
		return false
	}
	n, ok := types.Unalias(t).(*types.Named)
	if !ok {
		return false
	}
	obj := n.Obj()
	return obj.Pkg() != nil && obj.Pkg().Path() == pkg && obj.Name() == name
}

func isString(t types.Type) bool {
	if t == nil {
		return false
	}
	b, ok := t.Underlying().(*types.Basic)
	return ok && b.Info()&types.IsString != 0
}

// String() string
var stringer = types.NewInterfaceType([]*types.Func{
	types.NewFunc(token.NoPos, nil, "String", types.NewSignatureType(nil, nil, nil, nil,
		types.NewTuple(types.NewVar(token.NoPos, nil, "", types.Typ[types.String])), false)),
}, nil).Complete()

var errorType = types.Universe.Lookup("error").Type().Underlying().(*types.Interface)
