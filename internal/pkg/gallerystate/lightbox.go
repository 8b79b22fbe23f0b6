package gallerystate

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dmcfuji/studiosite/app/models"
)

// ErrNoImage is returned when a lightbox is opened on an empty list or an invalid index
var ErrNoImage = errors.New("no image at index")

// ScrollLock disables background scrolling while held
type ScrollLock interface {
	Lock()
	Unlock()
}

// BodyScrollLock counts holders; the page body is locked while any holder remains.
type BodyScrollLock struct {
	mu    sync.Mutex
	holds int
}

func (b *BodyScrollLock) Lock() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.holds++
}

func (b *BodyScrollLock) Unlock() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.holds > 0 {
		b.holds--
	}
}

// Locked reports whether background scrolling is currently disabled
func (b *BodyScrollLock) Locked() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.holds > 0
}

// Lightbox shows one image of a list at a time with circular navigation.
// The scroll lock is taken on open and released exactly once, whichever way it closes.
type Lightbox struct {
	mu      sync.Mutex
	images  []models.GalleryImage
	index   int
	lock    ScrollLock
	onClose func()
	open    bool
}

// OpenLightbox shows images[index]. onClose may be nil.
func OpenLightbox(images []models.GalleryImage, index int, lock ScrollLock, onClose func()) (*Lightbox, error) {
	if index < 0 || index >= len(images) {
		return nil, fmt.Errorf("%w %d (of %d)", ErrNoImage, index, len(images))
	}
	if lock != nil {
		lock.Lock()
	}
	return &Lightbox{images: images, index: index, lock: lock, onClose: onClose, open: true}, nil
}

func (l *Lightbox) Index() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.index
}

func (l *Lightbox) Len() int {
	return len(l.images)
}

// Current returns the displayed image
func (l *Lightbox) Current() models.GalleryImage {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.images[l.index]
}

// IsOpen is false once Close has run
func (l *Lightbox) IsOpen() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.open
}

// Next advances one image, wrapping from the last to the first.
func (l *Lightbox) Next() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.open {
		l.index = NextIndex(l.index, len(l.images))
	}
	return l.index
}

// Previous goes back one image, wrapping from the first to the last.
func (l *Lightbox) Previous() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.open {
		l.index = PreviousIndex(l.index, len(l.images))
	}
	return l.index
}

// HandleKey applies the keyboard bindings and reports whether the key was consumed.
func (l *Lightbox) HandleKey(key string) bool {
	if !l.IsOpen() {
		return false
	}
	switch key {
	case "Escape":
		l.Close()
	case "ArrowLeft":
		l.Previous()
	case "ArrowRight":
		l.Next()
	default:
		return false
	}
	return true
}

// Close releases the scroll lock and notifies the owner. Safe to call repeatedly.
func (l *Lightbox) Close() {
	l.mu.Lock()
	if !l.open {
		l.mu.Unlock()
		return
	}
	l.open = false
	lock, onClose := l.lock, l.onClose
	l.mu.Unlock()

	if lock != nil {
		lock.Unlock()
	}
	if onClose != nil {
		onClose()
	}
}

// Counter renders the "3 / 12" position label
func (l *Lightbox) Counter() string {
	return fmt.Sprintf("%d / %d", l.Index()+1, l.Len())
}

// NextIndex is the circular successor of i in a list of n items
func NextIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	return (i + 1) % n
}

// PreviousIndex is the circular predecessor of i in a list of n items
func PreviousIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	return (i - 1 + n) % n
}
