package elog

// FieldsN 嵌入到事件类型中，声明事件的必填字段及其顺序。
// 未导出的 fieldsN 方法用于在 RaiseN 处做编译期匹配。

// Fields0 声明事件没有必填字段
type Fields0 struct{}

func (Fields0) fields0() {}

func (Fields0) Metadata() []FieldSpec { return nil }

type Fields1[A Metadata] struct{}

func (Fields1[A]) fields1(A) {}

func (Fields1[A]) Metadata() []FieldSpec {
	return []FieldSpec{spec[A]()}
}

type Fields2[A, B Metadata] struct{}

func (Fields2[A, B]) fields2(A, B) {}

func (Fields2[A, B]) Metadata() []FieldSpec {
	return []FieldSpec{spec[A](), spec[B]()}
}

type Fields3[A, B, C Metadata] struct{}

func (Fields3[A, B, C]) fields3(A, B, C) {}

func (Fields3[A, B, C]) Metadata() []FieldSpec {
	return []FieldSpec{spec[A](), spec[B](), spec[C]()}
}

type Fields4[A, B, C, D Metadata] struct{}

func (Fields4[A, B, C, D]) fields4(A, B, C, D) {}

func (Fields4[A, B, C, D]) Metadata() []FieldSpec {
	return []FieldSpec{spec[A](), spec[B](), spec[C](), spec[D]()}
}

type Fields5[A, B, C, D, E Metadata] struct{}

func (Fields5[A, B, C, D, E]) fields5(A, B, C, D, E) {}

func (Fields5[A, B, C, D, E]) Metadata() []FieldSpec {
	return []FieldSpec{spec[A](), spec[B](), spec[C](), spec[D](), spec[E]()}
}

type Fields6[A, B, C, D, E, F Metadata] struct{}

func (Fields6[A, B, C, D, E, F]) fields6(A, B, C, D, E, F) {}

func (Fields6[A, B, C, D, E, F]) Metadata() []FieldSpec {
	return []FieldSpec{spec[A](), spec[B](), spec[C](), spec[D](), spec[E](), spec[F]()}
}

type Fields7[A, B, C, D, E, F, G Metadata] struct{}

func (Fields7[A, B, C, D, E, F, G]) fields7(A, B, C, D, E, F, G) {}

func (Fields7[A, B, C, D, E, F, G]) Metadata() []FieldSpec {
	return []FieldSpec{spec[A](), spec[B](), spec[C](), spec[D](), spec[E](), spec[F](), spec[G]()}
}

type Fields8[A, B, C, D, E, F, G, H Metadata] struct{}

func (Fields8[A, B, C, D, E, F, G, H]) fields8(A, B, C, D, E, F, G, H) {}

func (Fields8[A, B, C, D, E, F, G, H]) Metadata() []FieldSpec {
	return []FieldSpec{spec[A](), spec[B](), spec[C](), spec[D](), spec[E](), spec[F](), spec[G](), spec[H]()}
}
