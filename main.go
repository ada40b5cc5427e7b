package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/nPaBwaYT/desencoder/config"
	"github.com/nPaBwaYT/desencoder/cripta"
	"github.com/nPaBwaYT/desencoder/report"
	"github.com/urfave/cli"
)

/*
Encrypting a short text message
desencoder encrypt --key=133457799BBCDFF1 --message=Hi

Encrypting a raw 64-bit block, printing every round
desencoder encrypt --key=133457799BBCDFF1 --block=0123456789ABCDEF --trace

Printing the 16 round keys
desencoder keys --key=133457799BBCDFF1

Settings (debuglevel, format, trace) may also come from an INI file passed
with --config; command line flags take precedence.
*/

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[desencoder] %v\n", err)
	os.Exit(1)
}

func main() {
	app := newApp(os.Stdout)
	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}

// appState carries the loaded configuration from Before to the commands.
type appState struct {
	cfg *config.Config
}

func newApp(out io.Writer) *cli.App {
	state := &appState{}

	app := cli.NewApp()
	app.Name = "desencoder"
	app.Usage = "encrypt a single 64-bit block with DES"
	app.Writer = out
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config",
			Usage: "path to an INI configuration file",
		},
		cli.StringFlag{
			Name: "debuglevel",
			Usage: "logging level for all subsystems {trace, debug, " +
				"info, warn, error, critical, off}",
		},
	}
	app.Before = state.setup
	app.Commands = []cli.Command{
		state.encryptCommand(),
		state.keysCommand(),
	}

	return app
}

func (s *appState) setup(ctx *cli.Context) error {
	cfg, err := config.LoadConfig(ctx.String("config"))
	if err != nil {
		return err
	}

	if ctx.IsSet("debuglevel") {
		cfg.DebugLevel = ctx.String("debuglevel")
	}
	if err := setLogLevels(cfg.DebugLevel); err != nil {
		return err
	}

	s.cfg = cfg
	return nil
}

var keyFlag = cli.StringFlag{
	Name:  "key",
	Usage: "the 64-bit key as 16 hex digits",
}

func (s *appState) encryptCommand() cli.Command {
	return cli.Command{
		Name:  "encrypt",
		Usage: "Encrypt one block.",
		Description: `
	Encrypt a single 64-bit block with DES. The block is given either as
	hex digits with --block, or as a short text message with --message
	whose character codes, written in hex, are read as the block.
	`,
		Flags: []cli.Flag{
			keyFlag,
			cli.StringFlag{
				Name:  "message",
				Usage: "a short text message to encrypt",
			},
			cli.StringFlag{
				Name:  "block",
				Usage: "the 64-bit plaintext block as hex digits",
			},
			cli.StringFlag{
				Name: "format",
				Usage: "ciphertext output format {binary, " +
					"base64, hex, all}",
			},
			cli.BoolFlag{
				Name:  "trace",
				Usage: "print the key schedule and every round",
			},
		},
		Action: s.encrypt,
	}
}

func (s *appState) encrypt(ctx *cli.Context) error {
	key, err := readKey(ctx)
	if err != nil {
		return err
	}

	block, err := readBlock(ctx)
	if err != nil {
		return err
	}

	format := s.cfg.Format
	if ctx.IsSet("format") {
		format = ctx.String("format")
	}
	if !report.ValidFormat(format) {
		return fmt.Errorf("unknown format %q, expected one of %v",
			format, report.Formats)
	}

	trace := s.cfg.Trace
	if ctx.IsSet("trace") {
		trace = ctx.Bool("trace")
	}

	cipher := cripta.NewDESCipher()
	if err := cipher.SetKey(key); err != nil {
		return fmt.Errorf("unable to set key: %w", err)
	}

	denLog.Infof("Encrypting block %v", report.Hex(block))

	out := ctx.App.Writer
	if trace {
		keyTrace := cripta.TraceKeySchedule(key)
		encTrace, err := cripta.TraceEncrypt(block, cipher.RoundKeys())
		if err != nil {
			return err
		}

		fmt.Fprintln(out, report.KeyTable(keyTrace))
		fmt.Fprintln(out)
		fmt.Fprintln(out, report.RoundTable(encTrace))
		fmt.Fprintln(out)
	}

	ciphertext, err := cipher.EncryptBlock(block)
	if err != nil {
		return fmt.Errorf("unable to encrypt: %w", err)
	}

	return report.Ciphertext(out, ciphertext, format)
}

func (s *appState) keysCommand() cli.Command {
	return cli.Command{
		Name:  "keys",
		Usage: "Print the 16 round keys derived from a key.",
		Flags: []cli.Flag{
			keyFlag,
		},
		Action: s.keys,
	}
}

func (s *appState) keys(ctx *cli.Context) error {
	key, err := readKey(ctx)
	if err != nil {
		return err
	}

	denLog.Debugf("Deriving round keys for %v", report.Hex(key))

	_, err = fmt.Fprintln(
		ctx.App.Writer, report.KeyTable(cripta.TraceKeySchedule(key)),
	)
	return err
}

func readKey(ctx *cli.Context) (uint64, error) {
	if !ctx.IsSet("key") {
		return 0, errors.New("the --key flag is required")
	}

	key, err := cripta.ParseBlock(ctx.String("key"))
	if err != nil {
		return 0, fmt.Errorf("unable to parse key: %w", err)
	}
	return key, nil
}

func readBlock(ctx *cli.Context) (uint64, error) {
	switch {
	case ctx.IsSet("message") && ctx.IsSet("block"):
		return 0, errors.New("--message and --block are mutually " +
			"exclusive")

	case ctx.IsSet("message"):
		return cripta.MessageToBlock(ctx.String("message"))

	case ctx.IsSet("block"):
		block, err := cripta.ParseBlock(ctx.String("block"))
		if err != nil {
			return 0, fmt.Errorf("unable to parse block: %w", err)
		}
		return block, nil

	default:
		return 0, errors.New("either --message or --block is required")
	}
}
