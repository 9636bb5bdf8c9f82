package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/rexliu/navb/pkg/codec"
	"github.com/rexliu/navb/pkg/config"
	"github.com/rexliu/navb/pkg/nav"
	"github.com/rexliu/navb/pkg/session"
)

var errExit = errors.New("exit")

var shellCommands = []string{
	"add", "child", "dup", "help", "load", "mv", "new", "quit", "rm", "sample", "save", "set", "show", "tree", "validate",
}

func shellCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "shell [file]",
		Short: "Edit a navigation config interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sh := newShell(e, cmd.OutOrStdout())
			if len(args) == 1 {
				if err := sh.load(args[0]); err != nil {
					return err
				}
			}
			return sh.run()
		},
	}
}

type shell struct {
	env  *env
	sess *session.Session
	file string
	out  io.Writer
	rl   *readline.Instance
}

func newShell(e *env, out io.Writer) *shell {
	return &shell{env: e, sess: e.newSession(), out: out}
}

func (sh *shell) run() error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          sh.env.cfg.Shell.Prompt,
		HistoryFile:     config.ResolvePath(sh.env.profileDir, sh.env.cfg.Shell.HistoryFile),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    &shellCompleter{sh: sh},
	})
	if err != nil {
		return fmt.Errorf("readline: %w", err)
	}
	defer rl.Close()
	sh.rl = rl

	fmt.Fprintln(sh.out, "Type 'help' for commands")
	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			if err == io.EOF {
				return nil
			}
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if err := sh.dispatch(line); err != nil {
			if err == errExit {
				return nil
			}
			fmt.Fprintf(sh.out, "error: %v\n", err)
		}
	}
}

func (sh *shell) dispatch(line string) error {
	parts, err := splitArgs(line)
	if err != nil {
		return err
	}
	if len(parts) == 0 {
		return nil
	}
	args := parts[1:]

	switch parts[0] {
	case "tree", "ls":
		renderTree(sh.out, sh.sess.Forest())
		return nil

	case "add":
		if len(args) < 1 {
			return fmt.Errorf("usage: add <type> [label] [key=value...]")
		}
		t, data, err := parseItem(args[0], args[1:])
		if err != nil {
			return err
		}
		if err := sh.sess.Apply(nav.AddItemOp{Type: t, Data: data}); err != nil {
			return err
		}
		fmt.Fprintf(sh.out, "added %s [%d]\n", t, len(sh.sess.Forest())-1)
		return nil

	case "child":
		if len(args) < 2 {
			return fmt.Errorf("usage: child <node> <type> [label] [key=value...]")
		}
		parent, err := nav.Locate(sh.sess.Forest(), args[0])
		if err != nil {
			return err
		}
		t, data, err := parseItem(args[1], args[2:])
		if err != nil {
			return err
		}
		if err := sh.sess.Apply(nav.AddChildOp{ParentID: parent.ID, Type: t, Data: data}); err != nil {
			return err
		}
		updated, _ := nav.Find(sh.sess.Forest(), parent.ID)
		fmt.Fprintf(sh.out, "added %s [%s]\n", t, sh.pathOf(updated.Children[len(updated.Children)-1].ID))
		return nil

	case "set":
		if len(args) < 2 {
			return fmt.Errorf("usage: set <node> <field>=<value>...")
		}
		node, err := nav.Locate(sh.sess.Forest(), args[0])
		if err != nil {
			return err
		}
		patch, err := parsePatch(args[1:])
		if err != nil {
			return err
		}
		return sh.sess.Apply(nav.UpdateItemOp{NodeID: node.ID, Patch: patch})

	case "rm":
		if len(args) != 1 {
			return fmt.Errorf("usage: rm <node>")
		}
		node, err := nav.Locate(sh.sess.Forest(), args[0])
		if err != nil {
			return err
		}
		return sh.sess.Apply(nav.DeleteItemOp{NodeID: node.ID})

	case "mv":
		if len(args) != 2 {
			return fmt.Errorf("usage: mv <node> up|down")
		}
		node, err := nav.Locate(sh.sess.Forest(), args[0])
		if err != nil {
			return err
		}
		dir, err := nav.ParseDirection(args[1])
		if err != nil {
			return err
		}
		if err := sh.sess.Apply(nav.MoveItemOp{NodeID: node.ID, Direction: dir}); err != nil {
			return err
		}
		fmt.Fprintf(sh.out, "moved to [%s]\n", sh.pathOf(node.ID))
		return nil

	case "dup":
		if len(args) != 1 {
			return fmt.Errorf("usage: dup <node>")
		}
		node, err := nav.Locate(sh.sess.Forest(), args[0])
		if err != nil {
			return err
		}
		if err := sh.sess.Apply(nav.DuplicateItemOp{NodeID: node.ID}); err != nil {
			return err
		}
		fmt.Fprintf(sh.out, "duplicated to [%s]\n", nextSibling(sh.pathOf(node.ID)))
		return nil

	case "validate":
		printResult(sh.out, sh.sess.Validate())
		return nil

	case "show":
		format := string(session.FormatJSON)
		if len(args) > 0 {
			format = args[0]
		}
		f, err := session.ParseFormat(format)
		if err != nil {
			return err
		}
		out, err := sh.sess.Export(f)
		if err != nil {
			return err
		}
		_, err = sh.out.Write(out)
		return err

	case "save":
		path := sh.file
		if len(args) > 0 {
			path = args[0]
		}
		if path == "" {
			path = config.ResolvePath(sh.env.profileDir, sh.env.cfg.Output.FileName)
		}
		return sh.save(path)

	case "load":
		if len(args) != 1 {
			return fmt.Errorf("usage: load <file>")
		}
		return sh.load(args[0])

	case "new", "clear":
		sh.sess.Reset()
		sh.file = ""
		renderTree(sh.out, sh.sess.Forest())
		return nil

	case "sample":
		sh.sess.Load(codec.Sample())
		sh.file = ""
		renderTree(sh.out, sh.sess.Forest())
		return nil

	case "help", "?":
		sh.help()
		return nil

	case "quit", "exit":
		return errExit

	default:
		return fmt.Errorf("unknown command: %s", parts[0])
	}
}

func (sh *shell) load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	f, err := formatFor(path, "")
	if err != nil {
		return err
	}
	res, err := sh.sess.Import(data, f)
	if err != nil {
		return err
	}
	sh.file = path
	fmt.Fprintf(sh.out, "loaded %s (%d nodes)\n", path, nav.Count(sh.sess.Forest()))
	if !res.IsValid {
		printResult(sh.out, res)
	}
	return nil
}

func (sh *shell) save(path string) error {
	f, err := formatFor(path, "")
	if err != nil {
		return err
	}
	out, err := sh.sess.Export(f)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return err
	}
	sh.file = path
	fmt.Fprintf(sh.out, "saved %s\n", path)
	return nil
}

func (sh *shell) pathOf(id string) string {
	return nav.IndexPaths(sh.sess.Forest())[id]
}

func (sh *shell) help() {
	fmt.Fprintln(sh.out, "Commands:")
	fmt.Fprintln(sh.out, "  tree                               Show the tree with index paths")
	fmt.Fprintln(sh.out, "  add <type> [label] [k=v...]        Add a top-level item")
	fmt.Fprintln(sh.out, "  child <node> <type> [label] [k=v]  Add a child under node")
	fmt.Fprintln(sh.out, "  set <node> <field>=<value>...      Change label, icon, tag or href")
	fmt.Fprintln(sh.out, "  rm <node>                          Delete node and its children")
	fmt.Fprintln(sh.out, "  mv <node> up|down                  Swap node with a sibling")
	fmt.Fprintln(sh.out, "  dup <node>                         Copy node after itself")
	fmt.Fprintln(sh.out, "  validate                           Check for reserved paths")
	fmt.Fprintln(sh.out, "  show [json|yaml]                   Print the config")
	fmt.Fprintln(sh.out, "  save [file]                        Write the config")
	fmt.Fprintln(sh.out, "  load <file>                        Replace the tree from a file")
	fmt.Fprintln(sh.out, "  new                                Start from an empty tree")
	fmt.Fprintln(sh.out, "  sample                             Load the sample config")
	fmt.Fprintln(sh.out, "  quit                               Leave the shell")
	fmt.Fprintf(sh.out, "Types: %s\n", strings.Join(typeNames(), ", "))
	fmt.Fprintln(sh.out, "Nodes are addressed by index path (e.g. 3.1) or id.")
}

// parseItem builds a payload of type name from an optional label followed by
// key=value pairs.
func parseItem(name string, args []string) (nav.NodeType, nav.Data, error) {
	t, err := nav.ParseNodeType(name)
	if err != nil {
		return "", nil, err
	}
	if len(args) > 0 && !strings.Contains(args[0], "=") {
		args = append([]string{"label=" + args[0]}, args[1:]...)
	}
	patch, err := parsePatch(args)
	if err != nil {
		return "", nil, err
	}
	data, err := nav.NewData(t, patch)
	if err != nil {
		return "", nil, err
	}
	return t, data, nil
}

func parsePatch(args []string) (nav.Patch, error) {
	var p nav.Patch
	for _, arg := range args {
		key, val, ok := strings.Cut(arg, "=")
		if !ok {
			return p, fmt.Errorf("expected field=value, got %q", arg)
		}
		v := val
		switch strings.ToLower(key) {
		case "label", "path", "name", "key":
			p.Label = &v
		case "icon":
			p.Icon = &v
		case "tag":
			p.Tag = &v
		case "href":
			p.Href = &v
		default:
			return p, fmt.Errorf("unknown field %q", key)
		}
	}
	return p, nil
}

// splitArgs splits line on whitespace, keeping double-quoted runs together.
func splitArgs(line string) ([]string, error) {
	var (
		out     []string
		cur     strings.Builder
		quoted  bool
		pending bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			quoted = !quoted
			pending = true
		case (r == ' ' || r == '\t') && !quoted:
			if pending {
				out = append(out, cur.String())
				cur.Reset()
				pending = false
			}
		default:
			cur.WriteRune(r)
			pending = true
		}
	}
	if quoted {
		return nil, fmt.Errorf("unterminated quote")
	}
	if pending {
		out = append(out, cur.String())
	}
	return out, nil
}

func nextSibling(path string) string {
	i := strings.LastIndex(path, ".")
	n, err := strconv.Atoi(path[i+1:])
	if err != nil {
		return path
	}
	return path[:i+1] + strconv.Itoa(n+1)
}

func typeNames() []string {
	names := make([]string, len(nav.NodeTypes))
	for i, t := range nav.NodeTypes {
		names[i] = string(t)
	}
	return names
}

// --- Tab completion ---

type shellCompleter struct {
	sh *shell
}

func (c *shellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])
	words := strings.Fields(text)
	trailingSpace := len(text) > 0 && text[len(text)-1] == ' '
	var partial string
	if !trailingSpace && len(words) > 0 {
		partial = words[len(words)-1]
		words = words[:len(words)-1]
	}

	var result [][]rune
	for _, cand := range c.sh.candidates(words) {
		if !strings.HasPrefix(cand, partial) {
			continue
		}
		suffix := cand[len(partial):]
		if !strings.HasSuffix(cand, "=") {
			suffix += " "
		}
		result = append(result, []rune(suffix))
	}
	return result, len(partial)
}

// candidates lists completions for the word following words.
func (sh *shell) candidates(words []string) []string {
	if len(words) == 0 {
		return shellCommands
	}
	refs := func() []string {
		var out []string
		for _, p := range nav.IndexPaths(sh.sess.Forest()) {
			out = append(out, p)
		}
		sort.Strings(out)
		return out
	}
	switch words[0] {
	case "add":
		if len(words) == 1 {
			return typeNames()
		}
	case "child":
		switch len(words) {
		case 1:
			return refs()
		case 2:
			return typeNames()
		}
	case "set":
		if len(words) == 1 {
			return refs()
		}
		return []string{"label=", "icon=", "tag=", "href="}
	case "rm", "dup":
		if len(words) == 1 {
			return refs()
		}
	case "mv":
		switch len(words) {
		case 1:
			return refs()
		case 2:
			return []string{string(nav.Up), string(nav.Down)}
		}
	case "show":
		if len(words) == 1 {
			return []string{string(session.FormatJSON), string(session.FormatYAML)}
		}
	}
	return nil
}
