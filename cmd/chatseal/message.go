package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chatseal/chatseal"
)

func (a *app) encodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode [text...]",
		Short: "Encrypt a message",
		Long:  `Encrypt the arguments, or stdin when none are given, and print the encoded message.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := a.input(args)
			if err != nil {
				return err
			}
			e, err := a.engine()
			if err != nil {
				return err
			}
			primary, secondary, err := a.keys()
			if err != nil {
				return err
			}

			var messages []string
			if n := a.v.GetInt("chunk"); n > 0 {
				messages, err = e.EncodeChunked(text, primary, secondary, n)
			} else {
				var m string
				m, err = e.EncodeMessage(text, primary, secondary)
				messages = []string{m}
			}
			if err != nil {
				return err
			}
			for _, m := range messages {
				fmt.Fprintln(a.cfg.Stdout, m)
			}
			return nil
		},
	}
	cmd.Flags().Int("chunk", 0, "split the text into messages of at most this many bytes")
	return cmd
}

func (a *app) decodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode [message]",
		Short: "Decrypt messages",
		Long: `Decrypt the message given as argument, or every message found on stdin,
one per line. Lines that are not messages are skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := a.input(args)
			if err != nil {
				return err
			}
			e, err := a.engine()
			if err != nil {
				return err
			}
			primary, secondary, err := a.keys()
			if err != nil {
				return err
			}

			found := false
			sc := bufio.NewScanner(strings.NewReader(text))
			sc.Buffer(nil, 1<<20)
			for sc.Scan() {
				line := strings.TrimSpace(sc.Text())
				if !chatseal.IsMessage(line) {
					continue
				}
				found = true
				plain, err := e.DecodeMessage(line, primary, secondary)
				if err != nil {
					return err
				}
				fmt.Fprintln(a.cfg.Stdout, plain)
			}
			if err := sc.Err(); err != nil {
				return err
			}
			if !found {
				return chatseal.ErrMalformedMessage
			}
			return nil
		},
	}
}

// keys returns the password pair of --channel, or the --primary and
// --secondary passwords.
func (a *app) keys() ([]byte, []byte, error) {
	if channel := a.v.GetString("channel"); channel != "" {
		v, _, err := a.openVault()
		if err != nil {
			return nil, nil, err
		}
		pair, ok := v.Get(channel)
		if !ok {
			return nil, nil, fmt.Errorf("channel %q is not in the vault", channel)
		}
		return []byte(pair.Primary), []byte(pair.Secondary), nil
	}

	primary, err := a.secret("primary", "Primary password")
	if err != nil {
		return nil, nil, err
	}
	secondary, err := a.secret("secondary", "Secondary password")
	if err != nil {
		return nil, nil, err
	}
	return primary, secondary, nil
}
