package builtins

import (
	"math"

	"github.com/mosaic-lang/mosaic/internal/diagnostics"
	"github.com/mosaic-lang/mosaic/internal/values"
)

// matrix2D is a 2D affine transform: a 6-element
// [scaleX*cos, scaleX*sin, -scaleY*sin, scaleY*cos, translateX, translateY]
// composition of scale, rotation, and translation, in column-major pairs.
type matrix2D [6]float64

func matrix2DIdentity() matrix2D {
	return matrix2D{1, 0, 0, 1, 0, 0}
}

func matrix2DBuild(sx, sy, rotDeg, tx, ty float64) matrix2D {
	rad := rotDeg * (math.Pi / 180.0)
	cosR, sinR := math.Cos(rad), math.Sin(rad)
	return matrix2D{
		cosR * sx, sinR * sx,
		-sinR * sy, cosR * sy,
		tx, ty,
	}
}

func (m matrix2D) multiply(o matrix2D) matrix2D {
	return matrix2D{
		m[0]*o[0] + m[2]*o[1],
		m[1]*o[0] + m[3]*o[1],

		m[0]*o[2] + m[2]*o[3],
		m[1]*o[2] + m[3]*o[3],

		m[0]*o[4] + m[2]*o[5] + m[4],
		m[1]*o[4] + m[3]*o[5] + m[5],
	}
}

func (m matrix2D) inverse() (matrix2D, bool) {
	det := m[0]*m[3] - m[1]*m[2]
	if math.Abs(det) < 1e-8 {
		return matrix2D{}, false
	}
	invDet := 1.0 / det
	return matrix2D{
		m[3] * invDet,
		-m[1] * invDet,
		-m[2] * invDet,
		m[0] * invDet,
		(m[2]*m[5] - m[3]*m[4]) * invDet,
		(m[1]*m[4] - m[0]*m[5]) * invDet,
	}, true
}

func (m matrix2D) transformVertex(x, y float64) (float64, float64) {
	return x*m[0] + y*m[2] + m[4], x*m[1] + y*m[3] + m[5]
}

func (m matrix2D) toValue() values.Value {
	elems := make([]values.Value, len(m))
	for i, d := range m {
		elems[i] = values.Double(d)
	}
	return values.NewArray(elems...)
}

func matrixArgs(args []values.Value, diag *diagnostics.Sink, file string, line int, caller string, want int) ([]float64, bool) {
	if len(args) != want {
		domainError(diag, file, line, "%s() expects %d numeric argument(s), got %d", caller, want, len(args))
		return nil, false
	}
	out := make([]float64, want)
	for i, a := range args {
		if !values.IsNumeric(a) {
			domainError(diag, file, line, "%s(): argument %d must be numeric, got %s", caller, i+1, a.Type())
			return nil, false
		}
		out[i] = values.AsFloat64(a)
	}
	return out, true
}

// registerMatrix wires the matrix_* built-ins around one mutable "current
// matrix" shared across calls within an Interpreter, the way the original
// keeps a single process-wide current_matrix composed by successive
// matrix_build/matrix_multiply/matrix_inverse calls and read back with
// matrix_get or applied with matrix_transform_vertex.
func registerMatrix(r *Registry) {
	current := matrix2DIdentity()

	r.RegisterFunc("matrix_identity", func(args []values.Value, diag *diagnostics.Sink, file string, line int) values.Value {
		if len(args) != 0 {
			return domainError(diag, file, line, "matrix_identity() expects no arguments, got %d", len(args))
		}
		current = matrix2DIdentity()
		return current.toValue()
	})

	r.RegisterFunc("matrix_build", func(args []values.Value, diag *diagnostics.Sink, file string, line int) values.Value {
		a, ok := matrixArgs(args, diag, file, line, "matrix_build", 5)
		if !ok {
			return values.None{}
		}
		current = matrix2DBuild(a[0], a[1], a[2], a[3], a[4])
		return current.toValue()
	})

	r.RegisterFunc("matrix_multiply", func(args []values.Value, diag *diagnostics.Sink, file string, line int) values.Value {
		a, ok := matrixArgs(args, diag, file, line, "matrix_multiply", 6)
		if !ok {
			return values.None{}
		}
		other := matrix2D{a[0], a[1], a[2], a[3], a[4], a[5]}
		current = current.multiply(other)
		return current.toValue()
	})

	r.RegisterFunc("matrix_inverse", func(args []values.Value, diag *diagnostics.Sink, file string, line int) values.Value {
		if len(args) != 0 {
			return domainError(diag, file, line, "matrix_inverse() expects no arguments, got %d", len(args))
		}
		inv, ok := current.inverse()
		if !ok {
			return domainError(diag, file, line, "matrix_inverse(): matrix is not invertible")
		}
		current = inv
		return current.toValue()
	})

	r.RegisterFunc("matrix_transform_vertex", func(args []values.Value, diag *diagnostics.Sink, file string, line int) values.Value {
		a, ok := matrixArgs(args, diag, file, line, "matrix_transform_vertex", 2)
		if !ok {
			return values.None{}
		}
		tx, ty := current.transformVertex(a[0], a[1])
		return values.NewArray(values.Double(tx), values.Double(ty))
	})

	r.RegisterFunc("matrix_get", func(args []values.Value, diag *diagnostics.Sink, file string, line int) values.Value {
		if len(args) != 0 {
			return domainError(diag, file, line, "matrix_get() expects no arguments, got %d", len(args))
		}
		return current.toValue()
	})

	r.RegisterFunc("matrix_set", func(args []values.Value, diag *diagnostics.Sink, file string, line int) values.Value {
		a, ok := matrixArgs(args, diag, file, line, "matrix_set", 6)
		if !ok {
			return values.None{}
		}
		current = matrix2D{a[0], a[1], a[2], a[3], a[4], a[5]}
		return values.Boolean(true)
	})
}
