package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chatseal/chatseal"
	"github.com/chatseal/chatseal/internal/vault"
)

func (a *app) masterKey() ([]byte, error) {
	password, err := a.secret("master-password", "Master password")
	if err != nil {
		return nil, err
	}
	e, err := a.engine()
	if err != nil {
		return nil, err
	}
	return e.DeriveMasterKey(a.context(), password, a.progress("master key"))
}

func (a *app) openVault() (*vault.Vault, []byte, error) {
	path, err := a.vaultPath()
	if err != nil {
		return nil, nil, err
	}
	key, err := a.masterKey()
	if err != nil {
		return nil, nil, err
	}
	v, err := vault.Load(path, key)
	if err != nil {
		return nil, nil, err
	}
	return v, key, nil
}

func (a *app) saveVault(v *vault.Vault, key []byte) error {
	path, err := a.vaultPath()
	if err != nil {
		return err
	}
	if err := v.Save(path, key); err != nil {
		return err
	}
	a.log.WithField("path", path).Info("vault saved")
	return nil
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.cfg.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) blobCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blob",
		Short: "Seal or open data under the master password",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "seal",
			Short: "Seal stdin and print the base64 blob",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				data, err := io.ReadAll(a.cfg.Stdin)
				if err != nil {
					return err
				}
				key, err := a.masterKey()
				if err != nil {
					return err
				}
				blob, err := chatseal.EncryptBlob(data, key)
				if err != nil {
					return err
				}
				fmt.Fprintln(a.cfg.Stdout, blob)
				return nil
			},
		},
		&cobra.Command{
			Use:   "open",
			Short: "Open a blob read from stdin",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				blob, err := io.ReadAll(a.cfg.Stdin)
				if err != nil {
					return err
				}
				key, err := a.masterKey()
				if err != nil {
					return err
				}
				data, err := chatseal.DecryptBlob(strings.TrimSpace(string(blob)), key)
				if err != nil {
					return err
				}
				_, err = a.cfg.Stdout.Write(data)
				return err
			},
		},
	)
	return cmd
}

func (a *app) vaultCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vault",
		Short: "Manage channel passwords",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "set <channel>",
			Short: "Store the --primary and --secondary passwords for a channel",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				primary, err := a.secret("primary", "Primary password")
				if err != nil {
					return err
				}
				secondary, err := a.secret("secondary", "Secondary password")
				if err != nil {
					return err
				}
				v, key, err := a.openVault()
				if err != nil {
					return err
				}
				v.Set(args[0], chatseal.PasswordPair{Primary: string(primary), Secondary: string(secondary)})
				return a.saveVault(v, key)
			},
		},
		&cobra.Command{
			Use:   "get <channel>",
			Short: "Print the passwords of a channel",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				v, _, err := a.openVault()
				if err != nil {
					return err
				}
				pair, ok := v.Get(args[0])
				if !ok {
					return fmt.Errorf("channel %q is not in the vault", args[0])
				}
				return a.printJSON(pair)
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List the stored channels",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				v, _, err := a.openVault()
				if err != nil {
					return err
				}
				for _, name := range v.Channels() {
					fmt.Fprintln(a.cfg.Stdout, name)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete <channel>",
			Short: "Remove a channel",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				v, key, err := a.openVault()
				if err != nil {
					return err
				}
				v.Delete(args[0])
				return a.saveVault(v, key)
			},
		},
	)
	return cmd
}
