package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/autofeyn/pkg/errors"
	"github.com/matzehuels/autofeyn/pkg/io"
)

// requestFlags collects a diagram request from either a file or the leg
// flags. The two sources cannot be mixed.
type requestFlags struct {
	file string
	req  io.Request
}

func (f *requestFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.file, "file", "f", "", "read the request from a JSON or YAML file")
	flags.StringSliceVar(&f.req.IncomingElectrons, "in-electron", nil, "incoming electron names")
	flags.StringSliceVar(&f.req.IncomingPositrons, "in-positron", nil, "incoming positron names")
	flags.StringSliceVar(&f.req.IncomingPhotons, "in-photon", nil, "incoming photon names")
	flags.StringSliceVar(&f.req.OutgoingElectrons, "out-electron", nil, "outgoing electron names")
	flags.StringSliceVar(&f.req.OutgoingPositrons, "out-positron", nil, "outgoing positron names")
	flags.StringSliceVar(&f.req.OutgoingPhotons, "out-photon", nil, "outgoing photon names")
	flags.StringSliceVar(&f.req.Interactions, "vertex", nil, "electromagnetic vertex names")
}

// request returns the request described by the flags.
func (f *requestFlags) request() (io.Request, error) {
	if f.file != "" {
		if !f.req.Empty() {
			return io.Request{}, errors.New(errors.ErrCodeInvalidInput, "--file cannot be combined with leg flags")
		}
		return io.ImportRequest(f.file)
	}
	if f.req.Empty() {
		return io.Request{}, errors.New(errors.ErrCodeInvalidInput, "no legs given; pass --file or --in-*, --out-* and --vertex")
	}
	return f.req, nil
}
