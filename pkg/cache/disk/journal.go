package disk

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// The journal starts with a header of five lines followed by a blank line:
// magic, journal version, app version, internal version and value count.
// Every following line is one record:
//
//	DIRTY <hash>                  an edit was started
//	CLEAN <hash> <len0> <len1>    an edit was published
//	REMOVE <hash>                 the entry was removed or its edit aborted
//	READ <hash>                   the entry was read, for LRU order
//
// A DIRTY record without a following CLEAN or REMOVE marks files left by an
// interrupted edit; they are deleted on open.

func (c *LruCache) journalHeader() []string {
	return []string{
		journalMagic,
		journalVersion,
		strconv.Itoa(c.appVersion),
		strconv.Itoa(internalVersion),
		strconv.Itoa(valueCount),
	}
}

func (c *LruCache) readJournal() error {
	file, err := os.Open(filepath.Join(c.directory, journalFile))
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for _, expected := range append(c.journalHeader(), "") {
		if !scanner.Scan() {
			return fmt.Errorf("%w: truncated header", ErrJournalCorrupted)
		}

		if line := scanner.Text(); line != expected {
			return fmt.Errorf("%w: header line %q, expected %q", ErrJournalVersionMismatch, line, expected)
		}
	}

	dirty := map[string]bool{}
	lineCount := 0
	for scanner.Scan() {
		lineCount++
		if err := c.readRecord(scanner.Text(), dirty); err != nil {
			return fmt.Errorf("%w: line %d: %v", ErrJournalCorrupted, lineCount, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return err
	}

	for hash := range dirty {
		for i := 0; i < valueCount; i++ {
			os.Remove(c.cleanPath(hash, i))
		}

		if e, ok := c.entries[hash]; ok {
			if e.readable {
				c.size -= e.lengths[0] + e.lengths[1]
				c.order.Remove(e.element)
			}
			delete(c.entries, hash)
		}
	}

	c.redundantOps = lineCount - len(c.entries)
	return nil
}

func (c *LruCache) readRecord(line string, dirty map[string]bool) error {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return fmt.Errorf("unexpected record %q", line)
	}

	op, hash := fields[0], fields[1]
	e := c.entries[hash]

	switch op {
	case "DIRTY":
		if len(fields) != 2 {
			return fmt.Errorf("unexpected record %q", line)
		}
		dirty[hash] = true

	case "CLEAN":
		if len(fields) != 2+valueCount {
			return fmt.Errorf("unexpected record %q", line)
		}

		var lengths [valueCount]int64
		for i := range lengths {
			length, err := strconv.ParseInt(fields[2+i], 10, 64)
			if err != nil || length < 0 {
				return fmt.Errorf("invalid length in record %q", line)
			}
			lengths[i] = length
		}

		if e == nil {
			e = &entry{hash: hash}
			c.entries[hash] = e
		}

		if e.readable {
			c.size -= e.lengths[0] + e.lengths[1]
			c.order.MoveToFront(e.element)
		} else {
			e.element = c.order.PushFront(e)
		}

		e.readable = true
		e.lengths = lengths
		c.size += lengths[0] + lengths[1]
		delete(dirty, hash)

	case "REMOVE":
		if len(fields) != 2 {
			return fmt.Errorf("unexpected record %q", line)
		}

		if e != nil {
			if e.readable {
				c.size -= e.lengths[0] + e.lengths[1]
				c.order.Remove(e.element)
			}
			delete(c.entries, hash)
		}
		delete(dirty, hash)

	case "READ":
		if len(fields) != 2 {
			return fmt.Errorf("unexpected record %q", line)
		}

		if e != nil && e.readable {
			c.order.MoveToFront(e.element)
		}

	default:
		return fmt.Errorf("unknown operation %q", op)
	}

	return nil
}

// rebuildJournal writes a compact journal holding only the live entries,
// least recently used first, and reopens it for appending.
func (c *LruCache) rebuildJournal() error {
	if c.journal != nil {
		c.journalWriter.Flush()
		c.journal.Close()
		c.journal = nil
	}

	tempPath := filepath.Join(c.directory, journalTempFile)
	file, err := os.Create(tempPath)
	if err != nil {
		return fmt.Errorf("cannot create disk cache journal: %w", err)
	}

	writer := bufio.NewWriter(file)
	for _, line := range append(c.journalHeader(), "") {
		writer.WriteString(line + "\n")
	}

	for element := c.order.Back(); element != nil; element = element.Prev() {
		e := element.Value.(*entry)
		fmt.Fprintf(writer, "CLEAN %s %d %d\n", e.hash, e.lengths[0], e.lengths[1])
	}

	for _, e := range c.entries {
		if e.editor != nil {
			fmt.Fprintf(writer, "DIRTY %s\n", e.hash)
		}
	}

	if err := writer.Flush(); err != nil {
		file.Close()
		return fmt.Errorf("cannot write disk cache journal: %w", err)
	}

	if err := file.Close(); err != nil {
		return err
	}

	journalPath := filepath.Join(c.directory, journalFile)
	if err := os.Rename(tempPath, journalPath); err != nil {
		return fmt.Errorf("cannot replace disk cache journal: %w", err)
	}

	c.journal, err = os.OpenFile(journalPath, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("cannot open disk cache journal: %w", err)
	}

	c.journalWriter = bufio.NewWriter(c.journal)
	c.redundantOps = 0
	return nil
}

func (c *LruCache) writeRecord(fields ...string) error {
	if _, err := c.journalWriter.WriteString(strings.Join(fields, " ") + "\n"); err != nil {
		return err
	}

	return c.journalWriter.Flush()
}

func (c *LruCache) compactIfNeededLocked() error {
	if c.redundantOps < redundantOpsLimit || c.redundantOps < len(c.entries) {
		return nil
	}

	c.logger.WithField("redundantOps", c.redundantOps).Debug("compacting disk cache journal")
	return c.rebuildJournal()
}
