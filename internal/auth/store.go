// Package auth manages the shared credential file. Each line holds one
// account as identity,hash where hash is a bcrypt digest of the password.
// Identities containing spaces are written quoted.
//
// The admin account is not stored in the file. Its credentials come from
// configuration.
package auth

import (
	"bufio"
	"bytes"
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/mrz1836/taskbook/internal/constants"
	tberrors "github.com/mrz1836/taskbook/internal/errors"
	"github.com/mrz1836/taskbook/internal/storage"
)

const dirPerm = 0o750

// Account is one stored credential line.
type Account struct {
	Identity string
	Hash     string
}

// Store reads and writes the credential file.
type Store struct {
	path          string
	adminUser     string
	adminPassword string
	cost          int
	logger        zerolog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithAdmin sets the admin credentials.
func WithAdmin(username, password string) Option {
	return func(s *Store) {
		s.adminUser = username
		s.adminPassword = password
	}
}

// WithCost sets the bcrypt cost for new hashes.
func WithCost(cost int) Option {
	return func(s *Store) {
		s.cost = cost
	}
}

// WithLogger sets the store logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore returns a Store backed by the file at path.
func NewStore(path string, opts ...Option) *Store {
	s := &Store{
		path:          path,
		adminUser:     constants.DefaultAdminUsername,
		adminPassword: constants.DefaultAdminPassword,
		cost:          bcrypt.DefaultCost,
		logger:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the credential file path.
func (s *Store) Path() string { return s.path }

// AdminUsername returns the reserved admin identity.
func (s *Store) AdminUsername() string { return s.adminUser }

// Register adds a new account. Identity and password are trimmed and must be
// non-empty. The admin identity and existing identities are refused.
func (s *Store) Register(ctx context.Context, identity, password string) error {
	identity = strings.TrimSpace(identity)
	password = strings.TrimSpace(password)
	if identity == "" || password == "" {
		return fmt.Errorf("username and password: %w", tberrors.ErrEmptyValue)
	}
	if identity == s.adminUser {
		return tberrors.ErrProtectedUser
	}
	if err := storage.CheckIdentity(identity); err != nil {
		return err
	}

	accounts, err := s.load(ctx)
	if err != nil {
		return err
	}
	if taken := sharedFileKey(accounts, identity); taken != "" {
		return fmt.Errorf("%w: %q", tberrors.ErrUserExists, taken)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	accounts = append(accounts, Account{Identity: identity, Hash: string(hash)})
	if err := s.write(accounts); err != nil {
		return err
	}

	s.logger.Info().Str("user", identity).Msg("user registered")
	return nil
}

// Login checks identity and password and reports whether the account is the
// admin. Unknown identities and wrong passwords fail the same way.
func (s *Store) Login(ctx context.Context, identity, password string) (bool, error) {
	identity = strings.TrimSpace(identity)
	password = strings.TrimSpace(password)
	if identity == "" || password == "" {
		return false, tberrors.ErrInvalidCredentials
	}

	if identity == s.adminUser {
		if subtle.ConstantTimeCompare([]byte(password), []byte(s.adminPassword)) != 1 {
			s.logger.Warn().Str("user", identity).Msg("admin login failed")
			return false, tberrors.ErrInvalidCredentials
		}
		return true, nil
	}

	accounts, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	idx := slices.IndexFunc(accounts, func(a Account) bool { return a.Identity == identity })
	if idx < 0 {
		s.logger.Warn().Str("user", identity).Msg("login attempt for unknown user")
		return false, tberrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(accounts[idx].Hash), []byte(password)); err != nil {
		s.logger.Warn().Str("user", identity).Msg("login attempt with invalid password")
		return false, tberrors.ErrInvalidCredentials
	}

	s.logger.Debug().Str("user", identity).Msg("user logged in")
	return false, nil
}

// ListUsers returns the registered identities in file order. The admin is
// never included.
func (s *Store) ListUsers(ctx context.Context) ([]string, error) {
	accounts, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	users := make([]string, 0, len(accounts))
	for _, a := range accounts {
		if a.Identity != s.adminUser {
			users = append(users, a.Identity)
		}
	}
	return users, nil
}

// Remove deletes identity's credential line and rewrites the file.
func (s *Store) Remove(ctx context.Context, identity string) error {
	identity = strings.TrimSpace(identity)
	if identity == s.adminUser {
		return tberrors.ErrProtectedUser
	}

	accounts, err := s.load(ctx)
	if err != nil {
		return err
	}
	if !containsIdentity(accounts, identity) {
		return fmt.Errorf("%w: %q", tberrors.ErrUserNotFound, identity)
	}
	accounts = slices.DeleteFunc(accounts, func(a Account) bool { return a.Identity == identity })
	if err := s.write(accounts); err != nil {
		return err
	}

	s.logger.Info().Str("user", identity).Msg("user credentials removed")
	return nil
}

// sharedFileKey returns the existing identity whose task file would also be
// identity's, or "" when there is none.
func sharedFileKey(accounts []Account, identity string) string {
	key := storage.FileKey(identity)
	for _, a := range accounts {
		if storage.FileKey(a.Identity) == key {
			return a.Identity
		}
	}
	return ""
}

func containsIdentity(accounts []Account, identity string) bool {
	return slices.ContainsFunc(accounts, func(a Account) bool { return a.Identity == identity })
}

// load reads every well-formed line of the credential file. A missing file
// holds no accounts.
func (s *Store) load(ctx context.Context) ([]Account, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	data, err := os.ReadFile(s.path) //#nosec G304 -- path comes from configuration
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []Account{}, nil
		}
		return nil, fmt.Errorf("%w: failed to read credentials: %w", tberrors.ErrStorageIO, err)
	}

	var accounts []Account
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		a, ok := ParseLine(line)
		if !ok {
			s.logger.Warn().Int("line", n).Msg("skipping malformed credential line")
			continue
		}
		accounts = append(accounts, a)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to read credentials: %w", tberrors.ErrStorageIO, err)
	}
	return accounts, nil
}

// write replaces the credential file with accounts.
func (s *Store) write(accounts []Account) error {
	var buf bytes.Buffer
	for _, a := range accounts {
		buf.WriteString(FormatLine(a))
		buf.WriteByte('\n')
	}
	if err := os.MkdirAll(filepath.Dir(s.path), dirPerm); err != nil {
		return fmt.Errorf("%w: failed to create credentials directory: %w", tberrors.ErrStorageIO, err)
	}
	if err := storage.WriteAtomic(s.path, buf.Bytes()); err != nil {
		return fmt.Errorf("%w: failed to write credentials: %w", tberrors.ErrStorageIO, err)
	}
	return nil
}

// ParseLine splits a credential line into identity and hash. A leading quote
// delimits an identity that may contain spaces.
func ParseLine(line string) (Account, bool) {
	var identity, rest string
	if strings.HasPrefix(line, `"`) {
		end := strings.IndexByte(line[1:], '"')
		if end < 0 {
			return Account{}, false
		}
		identity = line[1 : end+1]
		rest = strings.TrimSpace(line[end+2:])
		if !strings.HasPrefix(rest, ",") {
			return Account{}, false
		}
		rest = rest[1:]
	} else {
		var found bool
		identity, rest, found = strings.Cut(line, ",")
		if !found {
			return Account{}, false
		}
	}

	identity = strings.TrimSpace(identity)
	hash := strings.TrimSpace(rest)
	if identity == "" || hash == "" {
		return Account{}, false
	}
	return Account{Identity: identity, Hash: hash}, true
}

// FormatLine renders a credential line, quoting identities with spaces.
func FormatLine(a Account) string {
	if strings.Contains(a.Identity, " ") {
		return `"` + a.Identity + `",` + a.Hash
	}
	return a.Identity + "," + a.Hash
}
