package raster

import "testing"

func TestTextureStoreInsertGet(t *testing.T) {
	s := newTextureStore()
	h := s.insert(Texture{Width: 2, Height: 2, Pixels: make([]byte, 16)})

	tex, ok := s.get(h)
	if !ok {
		t.Fatal("get should find the just-inserted texture")
	}
	if tex.Width != 2 || tex.Height != 2 {
		t.Errorf("tex = %+v, want Width=2 Height=2", tex)
	}
}

func TestTextureStoreUnknownHandle(t *testing.T) {
	s := newTextureStore()
	if _, ok := s.get(TextureHandle(99)); ok {
		t.Fatal("get on an empty store should fail")
	}

	s.insert(Texture{Width: 1, Height: 1, Pixels: make([]byte, 4)})
	if _, ok := s.get(TextureHandle(5)); ok {
		t.Fatal("get past the end of the arena should fail")
	}
}

func TestTextureAt(t *testing.T) {
	tex := &Texture{
		Width:  2,
		Height: 1,
		Pixels: []byte{1, 2, 3, 4, 5, 6, 7, 8},
	}
	if got, want := tex.At(1, 0), (Pixel{R: 5, G: 6, B: 7, A: 8}); got != want {
		t.Errorf("At(1,0) = %+v, want %+v", got, want)
	}
}
