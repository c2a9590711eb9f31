package upload

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

type Kind string

const (
	KindAvatar Kind = "avatar"
	KindCover  Kind = "cover"
)

// limite do arquivo recebido, antes da conversão
const MaxUploadBytes = 5 << 20

var ErrInvalidImage = errors.New("upload: invalid image")

// caixa máxima (largura x altura) por tipo de imagem
var bounds = map[Kind]image.Point{
	KindAvatar: {X: 512, Y: 512},
	KindCover:  {X: 1600, Y: 600},
}

func ParseKind(s string) (Kind, bool) {
	k := Kind(s)
	_, ok := bounds[k]
	return k, ok
}

// ToWebP decodes a jpeg, png or webp image, shrinks it to fit the kind's
// box keeping the aspect ratio and re-encodes it as lossy WebP.
func ToWebP(r io.Reader, kind Kind) ([]byte, error) {
	box, ok := bounds[kind]
	if !ok {
		return nil, fmt.Errorf("upload: unknown kind %q", kind)
	}

	src, _, err := image.Decode(io.LimitReader(r, MaxUploadBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	img := fit(src, box)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: 82}); err != nil {
		return nil, fmt.Errorf("upload: encode webp: %w", err)
	}
	return buf.Bytes(), nil
}

// fit nunca aumenta a imagem.
func fit(src image.Image, box image.Point) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= box.X && h <= box.Y {
		return src
	}

	scale := float64(box.X) / float64(w)
	if s := float64(box.Y) / float64(h); s < scale {
		scale = s
	}

	nw := max(1, int(float64(w)*scale))
	nh := max(1, int(float64(h)*scale))

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
