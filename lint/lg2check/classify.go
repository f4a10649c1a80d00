package lg2check

import "go/types"

// kind 值的渲染类别，与 core.Convert 的规则一一对应
type kind int

const (
	unsupportedKind kind = iota
	fieldKind
	unsignedKind
	signedKind
	boolKind
	floatKind
	stringKind
	pointerKind
	errorKind
	enumKind
)

// classify 按静态类型选择规则，顺序与运行期一致：
// error 优先，其次是带 String 方法的整数枚举。
func classify(t types.Type) kind {
	if t == nil {
		return unsupportedKind
	}
	if isNamed(t, corePath, "Field") {
		return fieldKind
	}
	if types.Implements(t, errorType) {
		return errorKind
	}

	switch u := t.Underlying().(type) {
	case *types.Basic:
		info := u.Info()
		switch {
		case u.Kind() == types.UnsafePointer:
			return pointerKind
		case info&types.IsInteger != 0:
			if types.Implements(t, stringer) {
				return enumKind
			}
			if info&types.IsUnsigned != 0 {
				return unsignedKind
			}
			return signedKind
		case info&types.IsBoolean != 0:
			return boolKind
		case info&types.IsFloat != 0:
			return floatKind
		case info&types.IsString != 0:
			return stringKind
		}
	case *types.Slice:
		if b, ok := u.Elem().Underlying().(*types.Basic); ok && b.Kind() == types.Byte {
			return stringKind
		}
	case *types.Pointer:
		return pointerKind
	}
	return unsupportedKind
}
