package main

import (
	"encoding/hex"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/chatseal/chatseal"
)

type sealedOutput struct {
	Seed     string `json:"seed"`
	Identity string `json:"identity"`
	File     string `json:"file"`
}

func (a *app) uploadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Encrypt or decrypt attachments",
	}

	seal := &cobra.Command{
		Use:   "seal <file>",
		Short: "Encrypt a file under a fresh seed",
		Long: `Encrypt a file with AES-256-CCM. The ciphertext is written to --out
(default <file>.sealed) and the seed and public identity are printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			meta := chatseal.UploadMetadata{
				MIME: mime.TypeByExtension(filepath.Ext(args[0])),
				Name: filepath.Base(args[0]),
			}
			if meta.MIME == "" {
				meta.MIME = "application/octet-stream"
			}

			sealed, err := chatseal.SealUpload(data, meta)
			if err != nil {
				return err
			}

			out := a.v.GetString("out")
			if out == "" {
				out = args[0] + ".sealed"
			}
			if err := os.WriteFile(out, sealed.Ciphertext, 0o644); err != nil {
				return err
			}
			return a.printJSON(sealedOutput{
				Seed:     hex.EncodeToString(sealed.Seed),
				Identity: hex.EncodeToString(sealed.Identity),
				File:     out,
			})
		},
	}

	open := &cobra.Command{
		Use:   "open <file>",
		Short: "Decrypt a sealed file",
		Long: `Decrypt a file sealed by "upload seal". The plaintext is written to --out,
or to the stored file name in the current directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, err := hex.DecodeString(a.v.GetString("seed"))
			if err != nil {
				return fmt.Errorf("invalid seed: %w", err)
			}
			ct, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			meta, data, err := chatseal.OpenUpload(seed, ct)
			if err != nil {
				return err
			}

			out := a.v.GetString("out")
			if out == "" {
				out = filepath.Base(meta.Name)
			}
			if out == "." || out == string(filepath.Separator) {
				return fmt.Errorf("sealed file has no usable name, use --out")
			}
			if err := os.WriteFile(out, data, 0o600); err != nil {
				return err
			}
			return a.printJSON(meta)
		},
	}

	for _, c := range []*cobra.Command{seal, open} {
		c.Flags().String("out", "", "output file")
	}
	open.Flags().String("seed", "", "hex seed printed by \"upload seal\"")

	cmd.AddCommand(seal, open)
	return cmd
}
