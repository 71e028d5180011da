package artifacts

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// RenameRule maps a file suffix to a fixed destination file name.
type RenameRule struct {
	Suffix string
	Target string
}

// Manager copies, removes, and renames configuration and key material files
// between a template root and fixed target directories.
type Manager struct {
	templateRoot string
	logger       *logrus.Logger
}

// NewManager creates a new artifact manager rooted at templateRoot.
func NewManager(templateRoot string, logger *logrus.Logger) *Manager {
	return &Manager{
		templateRoot: templateRoot,
		logger:       logger,
	}
}

// Deploy copies the named template into targetDir, overwriting any existing
// copy. The template is resolved by mapping the absolute target directory
// into the template root: deploying "a.conf" to /etc/httpd/conf.d reads
// <templateRoot>/etc/httpd/conf.d/a.conf.
func (m *Manager) Deploy(templateName, targetDir string) error {
	absTarget, err := filepath.Abs(targetDir)
	if err != nil {
		return fmt.Errorf("failed to resolve target directory %s: %w", targetDir, err)
	}

	src := filepath.Join(m.templateRoot, strings.TrimPrefix(absTarget, string(os.PathSeparator)), templateName)
	dst := filepath.Join(absTarget, templateName)

	m.logger.Debugf("Deploying template %s to %s", src, dst)

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open template %s: %w", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat template %s: %w", src, err)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy template to %s: %w", dst, err)
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", dst, err)
	}

	return nil
}

// Remove deletes path if it exists. A missing file is not an error.
func (m *Manager) Remove(path string) error {
	err := os.Remove(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}

	m.logger.Debugf("Removed %s", path)
	return nil
}

// RenameBySuffix lists the files in dir matching glob in sorted order and
// renames each one whose name ends in a rule's suffix to that rule's target
// name within the same directory. Files matching the glob but no rule are
// left untouched.
func (m *Manager) RenameBySuffix(dir, glob string, rules []RenameRule) error {
	matches, err := filepath.Glob(filepath.Join(dir, glob))
	if err != nil {
		return fmt.Errorf("failed to list %s in %s: %w", glob, dir, err)
	}
	sort.Strings(matches)

	for _, match := range matches {
		for _, rule := range rules {
			if !strings.HasSuffix(match, rule.Suffix) {
				continue
			}
			dst := filepath.Join(dir, rule.Target)
			if err := os.Rename(match, dst); err != nil {
				return fmt.Errorf("failed to rename %s to %s: %w", match, dst, err)
			}
			m.logger.Debugf("Renamed %s to %s", match, dst)
			break
		}
	}

	return nil
}
