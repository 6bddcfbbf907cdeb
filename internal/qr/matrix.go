package qr

import (
	"errors"
	"fmt"

	qrcode "github.com/yeqown/go-qrcode/v2"
)

// ErrEmptyContent is returned when the content to encode is empty.
var ErrEmptyContent = errors.New("content is empty")

// Matrix is the boolean module grid produced by the encoder: dark=true.
// It is immutable once built and shared read-only by the renderer.
type Matrix struct {
	n    int
	dark [][]bool
}

// NewMatrix wraps a square grid of modules. The side must be odd and at
// least 21 (QR version 1).
func NewMatrix(dark [][]bool) (Matrix, error) {
	n := len(dark)
	if n < 21 || n%2 == 0 {
		return Matrix{}, fmt.Errorf("invalid matrix side %d", n)
	}
	for _, row := range dark {
		if len(row) != n {
			return Matrix{}, fmt.Errorf("matrix is not square: row of %d in side %d", len(row), n)
		}
	}
	return Matrix{n: n, dark: dark}, nil
}

// Size returns the side length of the matrix.
func (m Matrix) Size() int { return m.n }

// Dark reports whether the module at (x, y) is dark.
func (m Matrix) Dark(x, y int) bool { return m.dark[y][x] }

// Encode turns content into a module matrix using the strictest error
// correction level. The encoding itself is delegated to the external encoder;
// a capturing writer lifts its module grid out.
func Encode(content string) (Matrix, error) {
	if content == "" {
		return Matrix{}, ErrEmptyContent
	}
	qrc, err := qrcode.NewWith(content,
		qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionHighest))
	if err != nil {
		return Matrix{}, fmt.Errorf("encode content: %w", err)
	}

	var mc matrixCapture
	if err := qrc.Save(&mc); err != nil {
		return Matrix{}, fmt.Errorf("read module matrix: %w", err)
	}
	return NewMatrix(mc.dark)
}

// matrixCapture implements qrcode.Writer to copy the module grid instead of
// rendering it.
type matrixCapture struct {
	dark [][]bool
}

func (c *matrixCapture) Write(mat qrcode.Matrix) error {
	n := mat.Width()
	c.dark = make([][]bool, n)
	for i := range c.dark {
		c.dark[i] = make([]bool, n)
	}
	mat.Iterate(qrcode.IterDirection_ROW, func(x, y int, v qrcode.QRValue) {
		if x < n && y < n {
			c.dark[y][x] = v.IsSet()
		}
	})
	return nil
}

func (c *matrixCapture) Close() error { return nil }

// IsEyeModule reports whether (x, y) lies inside one of the three 7x7
// finder-pattern blocks of an n-module matrix. QR codes have no bottom-right
// finder pattern.
func IsEyeModule(x, y, n int) bool {
	if x < 7 && y < 7 {
		return true
	}
	if x >= n-7 && y < 7 {
		return true
	}
	return x < 7 && y >= n-7
}
