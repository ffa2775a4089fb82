// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

const (
	// ProcessStartFailedId covers a training program that cannot be started.
	ProcessStartFailedId Id = iota + 1
	// BaseDirUnsetId covers an empty or relative HOMEDIR.
	BaseDirUnsetId
	// InvalidModelNameId covers a MODEL value that cannot form a run name.
	InvalidModelNameId
	// InterpreterNotFoundId covers a missing python interpreter.
	InterpreterNotFoundId
	// ConfigLoadFailedId covers an unreadable or invalid config.cue.
	ConfigLoadFailedId
)

type (
	// Id identifies a catalog entry.
	Id int

	// MarkdownMsg is the Markdown body of a catalog entry.
	MarkdownMsg string

	// HttpLink is an external reference shown under "See also".
	HttpLink string

	// Issue is long-form guidance for one failure class.
	Issue struct {
		id       Id
		mdMsg    MarkdownMsg
		extLinks []HttpLink
	}
)

// Id returns the catalog id.
func (i *Issue) Id() Id {
	return i.id
}

// MarkdownMsg returns the raw Markdown body.
func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// ExtLinks returns a copy of the external links.
func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Markdown returns the body with a "See also" section appended.
func (i *Issue) Markdown() string {
	var sb strings.Builder
	sb.WriteString(string(i.mdMsg))
	if len(i.extLinks) > 0 {
		sb.WriteString("\n\n## See also\n")
		for _, link := range i.extLinks {
			sb.WriteString("- <")
			sb.WriteString(string(link))
			sb.WriteString(">\n")
		}
	}
	return sb.String()
}

// Render renders the Markdown for the terminal. stylePath is a glamour
// style name ("dark", "light", "notty") or a path to a JSON style.
func (i *Issue) Render(stylePath string) (string, error) {
	return render(i.Markdown(), stylePath)
}

var (
	render = glamour.Render

	processStartFailedIssue = &Issue{
		id: ProcessStartFailedId,
		mdMsg: `
# The training program could not be started

trainlaunch composes the program path from ` + "`HOMEDIR`" + ` and runs it with the
configured interpreter. Nothing was started.

## Things you can try
- Print the exact command line without running it:
~~~
$ trainlaunch args
~~~
- Check every path the launch depends on:
~~~
$ trainlaunch check
~~~
- Point ` + "`launch.program`" + ` at your checkout in config.cue:
~~~cue
launch: program: "${HOMEDIR}/src/yolov5/train.py"
~~~`,
		extLinks: []HttpLink{"https://github.com/ultralytics/yolov5/blob/master/train.py"},
	}

	baseDirUnsetIssue = &Issue{
		id: BaseDirUnsetId,
		mdMsg: `
# HOMEDIR is empty or relative

Every data path is built as ` + "`${HOMEDIR}/GitHub/yolov5/...`" + `. With an empty
value the paths lose their leading segment and would point at the
filesystem root.

## Things you can try
- Unset HOMEDIR to fall back to your home directory:
~~~
$ unset HOMEDIR
~~~
- Or pass it explicitly:
~~~
$ trainlaunch run --home-dir /home/me
~~~`,
	}

	invalidModelNameIssue = &Issue{
		id: InvalidModelNameId,
		mdMsg: `
# MODEL cannot be used in a run name

The run name is ` + "`${MODEL}_T16-8_D2306-v0_9C`" + ` and becomes a directory under
` + "`runs/train`" + `. It must be non-empty and must not contain path separators.

## Things you can try
~~~
$ trainlaunch run --model yolov5s
~~~`,
	}

	interpreterNotFoundIssue = &Issue{
		id: InterpreterNotFoundId,
		mdMsg: `
# Python interpreter not found

The training program is a Python script and is started through
` + "`launch.interpreter`" + `, which was not found on PATH.

## Things you can try
- Activate the virtual environment holding the YOLOv5 requirements
- Or configure an absolute interpreter path:
~~~cue
launch: interpreter: "/opt/conda/envs/yolo/bin/python"
~~~`,
		extLinks: []HttpLink{"https://docs.ultralytics.com/yolov5/quickstart_tutorial/"},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration

## Configuration file locations
- Linux: ~/.config/trainlaunch/config.cue
- macOS: ~/Library/Application Support/trainlaunch/config.cue
- Windows: %APPDATA%\trainlaunch\config.cue

## Things you can try
- Show the effective configuration:
~~~
$ trainlaunch config show
~~~
- Write a fresh default file:
~~~
$ trainlaunch config init
~~~`,
	}

	issues = map[Id]*Issue{
		processStartFailedIssue.Id():  processStartFailedIssue,
		baseDirUnsetIssue.Id():        baseDirUnsetIssue,
		invalidModelNameIssue.Id():    invalidModelNameIssue,
		interpreterNotFoundIssue.Id(): interpreterNotFoundIssue,
		configLoadFailedIssue.Id():    configLoadFailedIssue,
	}
)

// Values returns every catalog entry ordered by id.
func Values() []*Issue {
	out := make([]*Issue, 0, len(issues))
	for _, i := range issues {
		out = append(out, i)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].id < out[b].id })
	return out
}

// Get returns the entry for id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}
