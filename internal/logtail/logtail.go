// Package logtail reads the tail of the client log file for the in-app
// log view. A ring buffer keeps memory at O(maxLines) regardless of how
// large the file has grown.
package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
)

// Read returns at most maxLines from the end of the file at path. A
// missing file yields no lines and no error; the client simply has not
// logged anything yet.
func Read(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Level extracts the log level token from a stdlib log line, or "" when
// none of the known levels appears. The UI uses it to pick a style.
func Level(line string) string {
	for _, level := range []string{"ERROR", "WARN", "INFO", "DEBUG"} {
		if containsToken(line, level) {
			return level
		}
	}
	return ""
}

func containsToken(line, token string) bool {
	for i := 0; i+len(token) <= len(line); i++ {
		if line[i:i+len(token)] != token {
			continue
		}
		beforeOK := i == 0 || line[i-1] == ' '
		afterOK := i+len(token) == len(line) || line[i+len(token)] == ' ' || line[i+len(token)] == ':'
		if beforeOK && afterOK {
			return true
		}
	}
	return false
}
