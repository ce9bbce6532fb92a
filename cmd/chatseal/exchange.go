package main

import (
	"bufio"
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/chatseal/chatseal"
)

func (a *app) context() context.Context {
	if a.ctx != nil {
		return a.ctx
	}
	return context.Background()
}

// progress logs every tenth of a long derivation.
func (a *app) progress(op string) chatseal.ProgressFunc {
	next := 0.1
	return func(p float64) bool {
		if p >= next {
			a.log.WithFields(logrus.Fields{"op": op, "progress": fmt.Sprintf("%.0f%%", p*100)}).Info("deriving")
			for next <= p {
				next += 0.1
			}
		}
		return false
	}
}

// storeOrPrint saves pair under --channel, or prints it when no channel
// is set.
func (a *app) storeOrPrint(pair chatseal.PasswordPair) error {
	channel := a.v.GetString("channel")
	if channel == "" {
		return a.printJSON(pair)
	}
	v, key, err := a.openVault()
	if err != nil {
		return err
	}
	v.Set(channel, pair)
	if err := a.saveVault(v, key); err != nil {
		return err
	}
	fmt.Fprintf(a.cfg.Stdout, "passwords stored for channel %q\n", channel)
	return nil
}

func (a *app) keygenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Generate a random password pair",
		Long: `Generate a random primary and secondary password. With --channel the
pair is stored in the vault, otherwise it is printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var b [64]byte
			if _, err := rand.Read(b[:]); err != nil {
				return err
			}
			return a.storeOrPrint(chatseal.PasswordPair{
				Primary:   hex.EncodeToString(b[:32]),
				Secondary: hex.EncodeToString(b[32:]),
			})
		},
	}
}

func (a *app) exchangeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exchange",
		Short: "Agree on a password pair with a peer",
		Long: `Print a public key to post to the peer, then read the peer's public key
from stdin. Both sides derive the same password pair. With --channel the
pair is stored in the vault, otherwise it is printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			family, err := chatseal.ParseExchangeFamily(a.v.GetString("family"))
			if err != nil {
				return err
			}
			e, err := a.engine()
			if err != nil {
				return err
			}

			kx, err := e.NewKeyExchange(family, a.v.GetInt("bits"))
			if err != nil {
				return err
			}
			defer kx.Close()

			fmt.Fprintln(a.cfg.Stdout, kx.PublicKey())
			a.log.Info("waiting for the peer's public key")

			peer, err := a.readPublicKey()
			if err != nil {
				return err
			}
			secret, err := kx.ComputeSharedSecret(peer)
			if err != nil {
				return err
			}
			pair, err := e.DeriveFinalPasswords(a.context(), secret, a.progress("passwords"))
			if err != nil {
				return err
			}
			return a.storeOrPrint(pair)
		},
	}
	cmd.Flags().String("family", "ECDH", "key exchange family: DH or ECDH")
	cmd.Flags().Int("bits", 256, "group or curve size")
	return cmd
}

func (a *app) readPublicKey() (string, error) {
	sc := bufio.NewScanner(a.cfg.Stdin)
	sc.Buffer(nil, 1<<20)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); chatseal.IsPublicKey(line) {
			return line, nil
		}
	}
	if err := sc.Err(); err != nil {
		return "", err
	}
	return "", chatseal.ErrInvalidPublicKey
}
