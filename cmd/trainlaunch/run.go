// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/trainlaunch/trainlaunch/internal/launch"
)

func newRunCommand(app *App) *cobra.Command {
	var (
		flags  launchFlags
		tty    bool
		dryRun bool
	)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the training program",
		Long: `Run the YOLOv5 training program and exit with its exit status.

The program is started as:

  python3 ${HOMEDIR}/GitHub/yolov5/train.py --img 640 --batch 32 --epochs 100 \
    --data <dataset.yaml> --weights yolov5n.pt --name ${MODEL}_T16-8_D2306-v0_9C \
    --hyp <hyp.scratch-low.yaml> --workers 4 --device 0

HOMEDIR and MODEL are also exported to the child. When the program cannot be
started, trainlaunch exits with 127 (not found), 126 (not executable) or 2
(invalid HOMEDIR, MODEL or paths).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := app.prepare(cmd, &flags)
			if err != nil {
				return err
			}

			if dryRun {
				renderDryRun(app.stdout, p, app.Validator.Validate(p.request))
				return nil
			}

			logger := app.logger()
			code, err := app.launcher(logger).Launch(cmd.Context(), p.request, launch.Options{TTY: tty})
			if err != nil {
				return &ExitError{Code: code, Err: startFailure(err)}
			}
			if !code.IsSuccess() {
				return &ExitError{Code: code}
			}
			return nil
		},
	}

	flags.register(runCmd)
	runCmd.Flags().BoolVarP(&tty, "tty", "t", false, "attach the training program to a pseudo-terminal")
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "print what would be executed without running it")

	return runCmd
}
