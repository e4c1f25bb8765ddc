package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tempoplan/planner-runtime/engine"
	"github.com/tempoplan/planner-runtime/planner"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateInputPaths modelState = iota
	stateSolving
	stateShowResult
)

type interactiveModel struct {
	err        error
	eng        *engine.Engine
	instance   *engine.Instance
	enginePath string
	fsRoot     string
	version    string
	result     string
	inputs     []textinput.Model
	focusIdx   int
	useContent bool
	state      modelState
}

type loadedMsg struct {
	err      error
	eng      *engine.Engine
	instance *engine.Instance
	version  string
}

type solvedMsg struct {
	err    error
	result planner.Result
}

func newInteractiveModel(enginePath, fsRoot string) *interactiveModel {
	inputs := make([]textinput.Model, 2)
	for i, prompt := range []string{"domain: ", "problem: "} {
		ti := textinput.New()
		ti.Prompt = prompt
		ti.Placeholder = "path/to/file.pddl"
		ti.Width = 48
		inputs[i] = ti
	}
	inputs[0].Focus()

	return &interactiveModel{
		enginePath: enginePath,
		fsRoot:     fsRoot,
		inputs:     inputs,
		state:      stateInputPaths,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.loadEngine
}

func (m *interactiveModel) loadEngine() tea.Msg {
	ctx := context.Background()

	cfg := &engine.Config{}
	if m.fsRoot != "" {
		cfg.EnableWASI = true
		cfg.FSRoot = m.fsRoot
	}

	eng, err := engine.New(ctx, cfg)
	if err != nil {
		return loadedMsg{err: err}
	}

	art, err := eng.LoadFile(ctx, m.enginePath)
	if err != nil {
		eng.Close(ctx)
		return loadedMsg{err: err}
	}

	inst, err := art.Instantiate(ctx)
	if err != nil {
		eng.Close(ctx)
		return loadedMsg{err: err}
	}

	version, err := planner.Version(ctx, inst)
	if err != nil {
		eng.Close(ctx)
		return loadedMsg{err: err}
	}

	return loadedMsg{eng: eng, instance: inst, version: version}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			ctx := context.Background()
			if m.instance != nil {
				m.instance.Close(ctx)
			}
			if m.eng != nil {
				m.eng.Close(ctx)
			}
			return m, tea.Quit

		case "tab":
			if m.state == stateInputPaths {
				m.inputs[m.focusIdx].Blur()
				m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
				m.inputs[m.focusIdx].Focus()
			}

		case "ctrl+t":
			if m.state == stateInputPaths {
				m.useContent = !m.useContent
			}

		case "enter":
			switch m.state {
			case stateInputPaths:
				if m.instance != nil {
					m.state = stateSolving
					return m, m.solve
				}
			case stateShowResult:
				m.state = stateInputPaths
				m.result = ""
				m.err = nil
			}
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.eng = msg.eng
		m.instance = msg.instance
		m.version = msg.version

	case solvedMsg:
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.result = describeResult(msg.result)
		}
		m.state = stateShowResult
	}

	if m.state == stateInputPaths {
		var cmds []tea.Cmd
		for i := range m.inputs {
			var cmd tea.Cmd
			m.inputs[i], cmd = m.inputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m *interactiveModel) solve() tea.Msg {
	ctx := context.Background()
	domain := m.inputs[0].Value()
	problem := m.inputs[1].Value()

	var res planner.Result
	err := planner.With(ctx, m.instance, func(p *planner.Planner) error {
		var solveErr error
		if m.useContent {
			domainText, err := os.ReadFile(domain)
			if err != nil {
				return err
			}
			problemText, err := os.ReadFile(problem)
			if err != nil {
				return err
			}
			res, solveErr = p.SolveContent(ctx, string(domainText), string(problemText))
		} else {
			res, solveErr = p.SolveFiles(ctx, domain, problem)
		}
		return solveErr
	})
	return solvedMsg{err: err, result: res}
}

func describeResult(res planner.Result) string {
	switch res.Outcome {
	case planner.Success:
		return "success, no plan produced"
	case planner.SolutionFound:
		return fmt.Sprintf("solution found: %d actions", res.PlanLength)
	case planner.NoSolutionFound:
		return "no solution exists"
	case planner.ParseError:
		return "engine could not parse the PDDL"
	case planner.FileError:
		return "engine could not read the files"
	case planner.InvalidHandle:
		return "engine rejected the handle"
	}
	return res.Outcome.String()
}

func (m *interactiveModel) View() string {
	s := titleStyle.Render("Temporal Planner") + "\n\n"

	if m.err != nil && m.instance == nil {
		s += errorStyle.Render("load failed: "+m.err.Error()) + "\n"
		s += helpStyle.Render("esc to quit") + "\n"
		return s
	}

	if m.instance == nil {
		s += "loading engine...\n"
		return s
	}

	s += labelStyle.Render("engine: ") + m.enginePath + "\n"
	s += labelStyle.Render("version: ") + m.version + "\n"
	mode := "file paths"
	if m.useContent {
		mode = "file content"
	}
	s += labelStyle.Render("mode: ") + mode + "\n\n"

	switch m.state {
	case stateInputPaths:
		for i := range m.inputs {
			s += m.inputs[i].View() + "\n"
		}
		s += "\n" + helpStyle.Render("tab switch field • ctrl+t toggle mode • enter solve • esc quit") + "\n"

	case stateSolving:
		s += warnStyle.Render("solving...") + "\n"

	case stateShowResult:
		if m.err != nil {
			s += errorStyle.Render("error: "+m.err.Error()) + "\n"
		} else {
			s += resultStyle.Render(m.result) + "\n"
		}
		s += "\n" + helpStyle.Render("enter to solve again • esc quit") + "\n"
	}

	return s
}

func runInteractive(enginePath, fsRoot string) error {
	p := tea.NewProgram(newInteractiveModel(enginePath, fsRoot))
	_, err := p.Run()
	return err
}
