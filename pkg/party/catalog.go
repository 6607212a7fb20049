package party

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultKey is the record key a lookup falls back to when the requested
// name is unknown.
const DefaultKey = "default"

// Catalog maps normalized names to party records. It is built once at
// startup; records are keyed by their lowercased file stem and, when
// present, their lowercased declared name.
type Catalog struct {
	senders    map[string]*Sender
	recipients map[string]*Recipient
}

// LoadCatalog scans the two record directories and builds the catalog.
// A record file that cannot be read or parsed fails the whole load with
// its path in the error.
func LoadCatalog(sendersDir, recipientsDir string) (*Catalog, error) {
	c := &Catalog{
		senders:    make(map[string]*Sender),
		recipients: make(map[string]*Recipient),
	}

	err := eachRecordFile(sendersDir, func(path string, f *os.File) error {
		s, err := LoadSender(f)
		if err != nil {
			return err
		}
		c.senders[stemKey(path)] = s
		if s.Name != "" {
			c.senders[normalize(s.Name)] = s
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = eachRecordFile(recipientsDir, func(path string, f *os.File) error {
		r, err := LoadRecipient(f)
		if err != nil {
			return err
		}
		c.recipients[stemKey(path)] = r
		if r.Name != "" {
			c.recipients[normalize(r.Name)] = r
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Sender resolves name to a sender record, falling back to the record
// keyed "default" when the name is unknown.
func (c *Catalog) Sender(name string) (*Sender, error) {
	if s, ok := c.senders[normalize(name)]; ok {
		return s, nil
	}
	if s, ok := c.senders[DefaultKey]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("no sender record for %q and no default record", name)
}

// Recipient resolves name to a recipient record, falling back to the
// record keyed "default" when the name is unknown.
func (c *Catalog) Recipient(name string) (*Recipient, error) {
	if r, ok := c.recipients[normalize(name)]; ok {
		return r, nil
	}
	if r, ok := c.recipients[DefaultKey]; ok {
		return r, nil
	}
	return nil, fmt.Errorf("no recipient record for %q and no default record", name)
}

// NumSenders returns the number of distinct lookup keys for senders.
func (c *Catalog) NumSenders() int { return len(c.senders) }

// NumRecipients returns the number of distinct lookup keys for recipients.
func (c *Catalog) NumRecipients() int { return len(c.recipients) }

func eachRecordFile(dir string, load func(path string, f *os.File) error) error {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return fmt.Errorf("scan record dir %s: %w", dir, err)
	}
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open record %s: %w", path, err)
		}
		err = load(path, f)
		f.Close()
		if err != nil {
			var mr *MalformedRecordError
			if errors.As(err, &mr) && mr.Path == "" {
				mr.Path = path
				return mr
			}
			return fmt.Errorf("record %s: %w", path, err)
		}
	}
	return nil
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func stemKey(path string) string {
	base := filepath.Base(path)
	return normalize(strings.TrimSuffix(base, filepath.Ext(base)))
}
