package crew

import "github.com/madslabs/mads/pkg/tool"

// Default model configuration for the built-in crew. Analysis work runs at a
// lower temperature than prose generation.
const (
	defaultAdapter = "openai"
	defaultModel   = "gpt-4o-mini"
)

// ReadmeCrew builds the built-in documentation crew: four workers and four
// stages that explore a project directory, analyze its code, write a
// README.md into the project root, and review the result. Stage instructions
// carry a {{.project_directory}} placeholder resolved at run time.
func ReadmeCrew() *Crew {
	navigator := &Worker{
		Name:      "navigator",
		Role:      "a Senior Project Navigator",
		Objective: "Create a comprehensive map of the project structure, identifying all files, directories, and their relationships.",
		Persona: "You are an experienced code explorer with 10+ years analyzing codebases. " +
			"You excel at understanding project layouts, identifying entry points and configuration files, " +
			"and creating clear mental models of how projects are organized. You always provide " +
			"structured, hierarchical views of project directories.",
		Tools: []tool.Kind{tool.KindCodeScanner},
		Model: ModelConfig{Adapter: defaultAdapter, Model: defaultModel, Temperature: 0.7, MaxIterations: 5},
	}

	analyst := &Worker{
		Name:      "analyst",
		Role:      "a Code Analysis Specialist",
		Objective: "Analyze code files to understand functionality, dependencies, patterns, and architecture.",
		Persona: "You are a senior software architect who specializes in reverse-engineering codebases. " +
			"You can identify design patterns, understand dependencies, and explain complex logic " +
			"in simple terms. You focus on understanding the 'why' behind code structures.",
		Tools: []tool.Kind{tool.KindCodeScanner},
		Model: ModelConfig{Adapter: defaultAdapter, Model: defaultModel, Temperature: 0.3, MaxIterations: 5},
	}

	writer := &Worker{
		Name:      "writer",
		Role:      "a Senior Technical Documentation Expert",
		Objective: "Create comprehensive, well-structured README.md documentation that is both informative and easy to understand.",
		Persona: "You are a technical writer with expertise in developer documentation. " +
			"You know how to structure README files with proper sections including project overview, " +
			"features, installation, usage, project structure, configuration, and contributing guidelines. " +
			"You use markdown effectively with code blocks, tables, and clear formatting.",
		Tools: []tool.Kind{tool.KindFileWriter},
		Model: ModelConfig{Adapter: defaultAdapter, Model: defaultModel, Temperature: 0.7, MaxIterations: 3},
	}

	reviewer := &Worker{
		Name:      "reviewer",
		Role:      "a Documentation Quality Reviewer",
		Objective: "Review and enhance documentation for completeness, clarity, and technical accuracy.",
		Persona: "You are a senior developer who reviews documentation for open-source projects. " +
			"You ensure documentation is complete, accurate, and includes all necessary sections. " +
			"You check for missing information and unclear explanations, and you apply improvements directly.",
		Tools: []tool.Kind{tool.KindCodeScanner, tool.KindFileWriter},
		Model: ModelConfig{Adapter: defaultAdapter, Model: defaultModel, Temperature: 0.7, MaxIterations: 2},
	}

	return &Crew{
		Name:        "readme-crew",
		Description: "Multi-agent README documentation pipeline",
		Workers:     []*Worker{navigator, analyst, writer, reviewer},
		Stages: []*Stage{
			{
				Name: "structure",
				Instructions: "Analyze the complete structure of the project in directory '{{.project_directory}}':\n" +
					"1. List all directories and subdirectories with their purposes\n" +
					"2. Identify all file types present\n" +
					"3. Locate key files (README, configuration files, main entry points)\n" +
					"4. Create a hierarchical tree view of the project structure\n" +
					"5. Identify the technology stack based on file extensions and config files",
				ExpectedOutput: "A detailed project structure report including a hierarchical directory tree, " +
					"files grouped by type, the identified technology stack, key configuration files, " +
					"and entry points.",
				Worker: navigator,
			},
			{
				Name: "analysis",
				Instructions: "Based on the project structure, analyze the codebase in '{{.project_directory}}':\n" +
					"1. Examine main code files to understand functionality\n" +
					"2. Identify key classes, functions, and modules\n" +
					"3. Map dependencies and imports\n" +
					"4. Detect design patterns and architectural decisions\n" +
					"5. Note any external libraries or frameworks used",
				ExpectedOutput: "A comprehensive code analysis report covering main functionalities, " +
					"key components and their responsibilities, dependencies, and design patterns.",
				Worker:    analyst,
				DependsOn: []int{0},
			},
			{
				Name: "write",
				Instructions: "Create a professional README.md for the project in '{{.project_directory}}'. " +
					"Use the structure and code analysis to write comprehensive documentation including " +
					"the project title and description, features, prerequisites, installation instructions, " +
					"usage examples with code snippets, project structure, configuration, and contributing " +
					"guidelines. Save the README.md in the project root directory.",
				ExpectedOutput: "A complete, well-formatted README.md file saved in the project directory.",
				Worker:         writer,
				DependsOn:      []int{0, 1},
			},
			{
				Name: "review",
				Instructions: "Review and enhance the generated README.md in '{{.project_directory}}':\n" +
					"1. Check for completeness of all sections\n" +
					"2. Verify technical accuracy\n" +
					"3. Ensure clarity and readability\n" +
					"4. Format code examples properly\n" +
					"5. Update the file with improvements",
				ExpectedOutput: "An enhanced, production-ready README.md with all improvements applied.",
				Worker:         reviewer,
				DependsOn:      []int{2},
			},
		},
	}
}
