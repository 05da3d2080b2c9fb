package stdbackend_test

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"testing"

	"github.com/thebartekbanach/imload/pkg/decode"
	"github.com/thebartekbanach/imload/pkg/decode/stdbackend"
	"github.com/thebartekbanach/imload/pkg/filefetcher"
	"github.com/thebartekbanach/imload/pkg/request"
)

func newTestImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{uint8(x), uint8(y), 0, 255})
		}
	}

	return img
}

func pngSource(t *testing.T, img image.Image) filefetcher.DataSource {
	var buff bytes.Buffer
	if err := png.Encode(&buff, img); err != nil {
		t.Fatalf("Cannot encode test image: %v", err)
	}

	return filefetcher.NewBytesDataSource(buff.Bytes(), filefetcher.DataFromMemory)
}

func newBackend(t *testing.T, source filefetcher.DataSource) decode.Backend {
	backend, err := stdbackend.NewBackendFactory(stdbackend.DefaultMaxPixels).NewBackend(context.Background(), source)
	if err != nil {
		t.Fatalf("Unexpected backend error: %v", err)
	}
	t.Cleanup(func() { backend.Close() })

	return backend
}

func TestBackend_ShouldReadImageInfoWithoutDecoding(t *testing.T) {
	backend := newBackend(t, pngSource(t, newTestImage(40, 30)))

	info := backend.ImageInfo()

	if info != (decode.ImageInfo{Width: 40, Height: 30, MimeType: "image/png"}) {
		t.Errorf("Expected 40x30 png, got %v", info)
	}
	if backend.ExifOrientation() != decode.OrientationUndefined {
		t.Errorf("Expected undefined orientation, got %v", backend.ExifOrientation())
	}
	if !backend.SupportsRegion() {
		t.Errorf("Expected png to support region decode")
	}
}

func TestBackend_ShouldSampleDecodedImage(t *testing.T) {
	backend := newBackend(t, pngSource(t, newTestImage(41, 30)))

	img, err := backend.Decode(context.Background(), 4)

	if err != nil {
		t.Fatalf("Expected nil error, got %v", err)
	}
	if size := decode.ImageSize(img); size != request.NewSize(11, 8) {
		t.Errorf("Expected 11x8, got %v", size)
	}
}

func TestBackend_ShouldDecodeRegion(t *testing.T) {
	backend := newBackend(t, pngSource(t, newTestImage(40, 30)))

	img, err := backend.DecodeRegion(context.Background(), image.Rect(10, 5, 20, 25), 1)

	if err != nil {
		t.Fatalf("Expected nil error, got %v", err)
	}
	if size := decode.ImageSize(img); size != request.NewSize(10, 20) {
		t.Fatalf("Expected 10x20, got %v", size)
	}

	r, g, _, _ := img.At(img.Bounds().Min.X, img.Bounds().Min.Y).RGBA()
	if r>>8 != 10 || g>>8 != 5 {
		t.Errorf("Expected region to start at source pixel (10,5), got (%d,%d)", r>>8, g>>8)
	}
}

func TestBackend_ShouldRejectRegionOutsideOfImage(t *testing.T) {
	backend := newBackend(t, pngSource(t, newTestImage(40, 30)))

	_, err := backend.DecodeRegion(context.Background(), image.Rect(30, 20, 50, 40), 1)

	if !errors.Is(err, decode.ErrRegionUnsupported) {
		t.Errorf("Expected %v, got %v", decode.ErrRegionUnsupported, err)
	}
}

func TestBackend_ShouldNotSupportRegionsForGif(t *testing.T) {
	var buff bytes.Buffer
	paletted := image.NewPaletted(image.Rect(0, 0, 8, 8), color.Palette{color.Black, color.White})
	if err := gif.Encode(&buff, paletted, nil); err != nil {
		t.Fatalf("Cannot encode test gif: %v", err)
	}
	backend := newBackend(t, filefetcher.NewBytesDataSource(buff.Bytes(), filefetcher.DataFromMemory))

	_, err := backend.DecodeRegion(context.Background(), image.Rect(0, 0, 4, 4), 1)

	if backend.SupportsRegion() {
		t.Errorf("Expected gif not to support regions")
	}
	if !errors.Is(err, decode.ErrRegionUnsupported) {
		t.Errorf("Expected %v, got %v", decode.ErrRegionUnsupported, err)
	}
}

func TestBackend_ShouldReturnUnknownFormatError(t *testing.T) {
	source := filefetcher.NewBytesDataSource([]byte("definitely not an image"), filefetcher.DataFromMemory)

	_, err := stdbackend.NewBackendFactory(stdbackend.DefaultMaxPixels).NewBackend(context.Background(), source)

	if !errors.Is(err, stdbackend.ErrUnknownFormat) {
		t.Errorf("Expected %v, got %v", stdbackend.ErrUnknownFormat, err)
	}
}

// pngWithDeclaredSize rewrites the IHDR chunk of a tiny png so its header
// declares width x height pixels.
func pngWithDeclaredSize(t *testing.T, width, height uint32) []byte {
	var buff bytes.Buffer
	if err := png.Encode(&buff, newTestImage(1, 1)); err != nil {
		t.Fatalf("Cannot encode test image: %v", err)
	}

	data := buff.Bytes()
	binary.BigEndian.PutUint32(data[16:20], width)
	binary.BigEndian.PutUint32(data[20:24], height)
	binary.BigEndian.PutUint32(data[29:33], crc32.ChecksumIEEE(data[12:29]))

	return data
}

func TestBackend_ShouldRefuseImagesAboveThePixelBudget(t *testing.T) {
	source := filefetcher.NewBytesDataSource(pngWithDeclaredSize(t, 30000, 30000), filefetcher.DataFromNetwork)

	_, err := stdbackend.NewBackendFactory(stdbackend.DefaultMaxPixels).NewBackend(context.Background(), source)

	if !errors.Is(err, decode.ErrImageTooLarge) {
		t.Errorf("Expected %v, got %v", decode.ErrImageTooLarge, err)
	}
}

func TestBackend_ShouldAcceptImagesWithinThePixelBudget(t *testing.T) {
	source := filefetcher.NewBytesDataSource(pngWithDeclaredSize(t, 100, 100), filefetcher.DataFromNetwork)

	backend, err := stdbackend.NewBackendFactory(100 * 100).NewBackend(context.Background(), source)

	if err != nil {
		t.Fatalf("Expected nil error, got %v", err)
	}
	if info := backend.ImageInfo(); info.Width != 100 || info.Height != 100 {
		t.Errorf("Expected 100x100, got %v", info)
	}
}

func TestBackend_ShouldHonourCanceledContext(t *testing.T) {
	backend := newBackend(t, pngSource(t, newTestImage(4, 4)))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := backend.Decode(ctx, 1)

	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected %v, got %v", context.Canceled, err)
	}
}

func TestEncoder_ShouldKeepEncodableFormatsAndFallBackToPng(t *testing.T) {
	encoder := stdbackend.NewEncoder(0)
	cases := map[string]string{
		"image/jpeg": "image/jpeg",
		"image/png":  "image/png",
		"image/bmp":  "image/bmp",
		"image/tiff": "image/tiff",
		"image/gif":  "image/gif",
		"image/webp": "image/png",
		"":           "image/png",
	}

	for requested, expected := range cases {
		var buff bytes.Buffer
		written, err := encoder.Encode(&buff, newTestImage(8, 8), requested)

		if err != nil {
			t.Fatalf("Unexpected encode error for %q: %v", requested, err)
		}
		if written != expected {
			t.Errorf("Expected %v for %q, got %v", expected, requested, written)
		}

		_, format, err := image.DecodeConfig(bytes.NewReader(buff.Bytes()))
		if err != nil || "image/"+format != expected {
			t.Errorf("Expected decodable %v, got %v (%v)", expected, format, err)
		}
	}
}
