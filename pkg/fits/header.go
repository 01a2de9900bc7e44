// Package fits reads and edits keywords in the primary header of FITS files.
package fits

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const (
	// BlockSize is the size of a FITS header or data block.
	BlockSize = 2880
	// CardSize is the size of a single header card.
	CardSize = 80

	cardsPerBlock = BlockSize / CardSize
	maxStringLen  = CardSize - 12
)

// ErrNotFITS is returned for files that do not start with a SIMPLE card.
var ErrNotFITS = errors.New("not a FITS file")

var endCard = pad("END")

// header is the raw primary header, always a whole number of blocks.
type header struct {
	raw []byte
	end int
}

func (h *header) card(i int) []byte {
	return h.raw[i*CardSize : (i+1)*CardSize]
}

func (h *header) find(key string) int {
	for i := 0; i < h.end; i++ {
		if cardKey(h.card(i)) == key {
			return i
		}
	}
	return -1
}

func readHeader(r io.Reader) (*header, error) {
	h := &header{}
	block := make([]byte, BlockSize)
	for {
		if _, err := io.ReadFull(r, block); err != nil {
			if len(h.raw) == 0 {
				return nil, ErrNotFITS
			}
			return nil, fmt.Errorf("header has no END card: %w", err)
		}

		if len(h.raw) == 0 && cardKey(block[:CardSize]) != "SIMPLE" {
			return nil, ErrNotFITS
		}

		start := len(h.raw) / CardSize
		h.raw = append(h.raw, block...)
		for i := start; i < start+cardsPerBlock; i++ {
			if cardKey(h.card(i)) == "END" {
				h.end = i
				return h, nil
			}
		}
	}
}

// Keyword returns the value of key in the primary header of the file at path.
func Keyword(path string, key string) (string, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", false, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	h, err := readHeader(f)
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", path, err)
	}

	i := h.find(strings.ToUpper(key))
	if i < 0 {
		return "", false, nil
	}
	return cardValue(h.card(i)), true, nil
}

// SetKeyword sets key to the string value in the primary header of the file at path.
// An existing card is replaced in place. A new card goes before END, growing the
// header by one block when the last block is full.
func SetKeyword(path string, key string, value string) error {
	key = strings.ToUpper(key)
	card, err := stringCard(key, value)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}

	h, err := readHeader(f)
	if err != nil {
		f.Close()
		return fmt.Errorf("read %s: %w", path, err)
	}

	if i := h.find(key); i >= 0 {
		return writeCards(f, card, i)
	}

	if h.end+1 < len(h.raw)/CardSize {
		return writeCards(f, append(card, endCard...), h.end)
	}

	return grow(f, path, h, card)
}

func writeCards(f *os.File, cards []byte, at int) error {
	if _, err := f.WriteAt(cards, int64(at*CardSize)); err != nil {
		f.Close()
		return fmt.Errorf("write: %w", err)
	}
	return f.Close()
}

// grow rewrites the file with one extra header block holding card.
func grow(f *os.File, path string, h *header, card []byte) error {
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat: %w", err)
	}

	raw := make([]byte, 0, len(h.raw)+BlockSize)
	raw = append(raw, h.raw[:h.end*CardSize]...)
	raw = append(raw, card...)
	raw = append(raw, endCard...)
	raw = append(raw, bytes.Repeat([]byte(" "), len(h.raw)+BlockSize-len(raw))...)

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("write header: %w", err)
	}
	if _, err := f.Seek(int64(len(h.raw)), io.SeekStart); err != nil {
		tmp.Close()
		return fmt.Errorf("seek: %w", err)
	}
	if _, err := io.Copy(tmp, f); err != nil {
		tmp.Close()
		return fmt.Errorf("copy data: %w", err)
	}
	if err := tmp.Chmod(st.Mode().Perm()); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}

	return os.Rename(tmp.Name(), path)
}

func pad(s string) []byte {
	b := bytes.Repeat([]byte(" "), CardSize)
	copy(b, s)
	return b
}

func cardKey(card []byte) string {
	return strings.TrimRight(string(card[:8]), " ")
}

// stringCard formats a fixed-format string card: KEY     = 'value   '.
func stringCard(key string, value string) ([]byte, error) {
	if key == "" || len(key) > 8 {
		return nil, fmt.Errorf("invalid keyword %q", key)
	}

	quoted := strings.ReplaceAll(value, "'", "''")
	if len(quoted) > maxStringLen {
		return nil, fmt.Errorf("value for %s too long: %d bytes", key, len(quoted))
	}
	if len(quoted) < 8 {
		quoted += strings.Repeat(" ", 8-len(quoted))
	}

	return pad(fmt.Sprintf("%-8s= '%s'", key, quoted)), nil
}

// cardValue returns the value of a card, unquoting strings and dropping comments.
func cardValue(card []byte) string {
	if string(card[8:10]) != "= " {
		return ""
	}
	v := strings.TrimLeft(string(card[10:]), " ")

	if !strings.HasPrefix(v, "'") {
		before, _, _ := strings.Cut(v, "/")
		return strings.TrimSpace(before)
	}

	var sb strings.Builder
	for i := 1; i < len(v); i++ {
		if v[i] != '\'' {
			sb.WriteByte(v[i])
			continue
		}
		if i+1 < len(v) && v[i+1] == '\'' {
			sb.WriteByte('\'')
			i++
			continue
		}
		break
	}
	return strings.TrimRight(sb.String(), " ")
}
