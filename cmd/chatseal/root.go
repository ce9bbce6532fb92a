package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/chatseal/chatseal"
)

// Config holds the streams used by the command.
type Config struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultConfig returns a Config bound to the process streams.
func DefaultConfig() Config {
	return Config{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

func run(args []string, cfg Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := newRootCmd(cfg)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

type app struct {
	ctx     context.Context
	cfg     Config
	v       *viper.Viper
	log     *logrus.Logger
	cfgFile string
}

func newRootCmd(cfg Config) *cobra.Command {
	a := &app{cfg: cfg, v: viper.New(), log: logrus.New()}
	a.log.SetOutput(cfg.Stderr)

	root := &cobra.Command{
		Use:   "chatseal",
		Short: "Dual-cipher encryption for chat messages",
		Long: `chatseal encrypts text with two block ciphers in sequence and encodes the
result as Braille characters that survive copy and paste through any chat
client. Passwords can be typed, stored per channel in an encrypted vault,
or agreed with a peer through a DH or ECDH exchange.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.init,
	}
	root.SetIn(cfg.Stdin)
	root.SetOut(cfg.Stdout)
	root.SetErr(cfg.Stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.chatseal.yaml)")
	pf.String("log-level", "warning", "log level (debug, info, warning, error)")
	pf.Int("cipher", 7, "cipher suite index 0-24")
	pf.String("ciphers", "", "primary and secondary cipher by name, e.g. Camellia,AES (overrides --cipher)")
	pf.String("mode", "CBC", "block mode: CBC, CFB or OFB")
	pf.String("padding", "PKCS7", "padding: PKCS7, ANSIX923, ISO10126 or ISO97971")
	pf.Bool("auth", true, "authenticate messages with HMAC-SHA256")
	pf.Int("iterations", 1000, "PBKDF2 iterations per cipher stage")
	pf.String("primary", "", "primary password (prompted when empty)")
	pf.String("secondary", "", "secondary password (prompted when empty)")
	pf.String("channel", "", "take passwords from this vault channel")
	pf.String("vault", "", "vault file (default is $HOME/.chatseal/vault)")
	pf.String("master-password", "", "vault master password (prompted when empty)")
	pf.Int("scrypt-n", 16384, "scrypt cost of the master key")

	root.AddCommand(
		a.encodeCmd(),
		a.decodeCmd(),
		a.keygenCmd(),
		a.exchangeCmd(),
		a.blobCmd(),
		a.vaultCmd(),
		a.uploadCmd(),
	)
	return root
}

// init loads .env, the config file and CHATSEAL_* variables, in that
// order of increasing precedence below flags.
func (a *app) init(cmd *cobra.Command, _ []string) error {
	a.ctx = cmd.Context()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		a.v.AddConfigPath(home)
		a.v.SetConfigType("yaml")
		a.v.SetConfigName(".chatseal")
	}

	a.v.SetEnvPrefix("chatseal")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	level, err := logrus.ParseLevel(a.v.GetString("log-level"))
	if err != nil {
		return err
	}
	a.log.SetLevel(level)
	if used := a.v.ConfigFileUsed(); used != "" {
		a.log.WithField("file", used).Debug("using config file")
	}
	return nil
}

func (a *app) cipherIndex() (int, error) {
	names := a.v.GetString("ciphers")
	if names == "" {
		return a.v.GetInt("cipher"), nil
	}
	first, second, ok := strings.Cut(names, ",")
	if !ok {
		return 0, fmt.Errorf("--ciphers needs two names, got %q", names)
	}
	primary, err := chatseal.ParseAlgorithm(first)
	if err != nil {
		return 0, err
	}
	secondary, err := chatseal.ParseAlgorithm(second)
	if err != nil {
		return 0, err
	}
	suite, err := chatseal.NewSuite(primary, secondary)
	if err != nil {
		return 0, err
	}
	return int(suite), nil
}

func (a *app) engine() (*chatseal.Engine, error) {
	index, err := a.cipherIndex()
	if err != nil {
		return nil, err
	}
	mode, err := chatseal.ParseBlockMode(a.v.GetString("mode"))
	if err != nil {
		return nil, err
	}
	pad, err := chatseal.ParsePaddingScheme(a.v.GetString("padding"))
	if err != nil {
		return nil, err
	}
	return chatseal.New(
		chatseal.WithCipherIndex(index),
		chatseal.WithBlockMode(mode),
		chatseal.WithPadding(pad),
		chatseal.WithAuthentication(a.v.GetBool("auth")),
		chatseal.WithKDFIterations(a.v.GetInt("iterations")),
		chatseal.WithMasterKeyParams(chatseal.ScryptParams{N: a.v.GetInt("scrypt-n"), R: 8, P: 1, KeyLen: 32}),
		chatseal.WithLogger(a.log),
	)
}

// secret returns the value of a password setting, prompting on the
// terminal when it is unset.
func (a *app) secret(key, prompt string) ([]byte, error) {
	if s := a.v.GetString(key); s != "" {
		return []byte(s), nil
	}

	f, ok := a.cfg.Stdin.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return nil, fmt.Errorf("no %s given", key)
	}
	fmt.Fprintf(a.cfg.Stderr, "%s: ", prompt)
	b, err := term.ReadPassword(int(f.Fd()))
	fmt.Fprintln(a.cfg.Stderr)
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return nil, fmt.Errorf("no %s given", key)
	}
	return b, nil
}

func (a *app) vaultPath() (string, error) {
	if p := a.v.GetString("vault"); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".chatseal", "vault"), nil
}

// input returns the joined arguments, or all of stdin without the final
// newline when there are none.
func (a *app) input(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	b, err := io.ReadAll(a.cfg.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(b), "\r\n"), nil
}
