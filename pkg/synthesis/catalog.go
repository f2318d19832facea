package synthesis

import (
	"os"

	"github.com/pronas-suite/aicore/pkg/domain"
	xe "github.com/pronas-suite/aicore/pkg/errors"
	"gopkg.in/yaml.v3"
)

// MethodologyTemplate is the canned methodology of one project type.
type MethodologyTemplate struct {
	Approach   string   `yaml:"approach"`
	Phases     []string `yaml:"phases"`
	Techniques []string `yaml:"techniques"`
}

type TeamTemplate struct {
	Role           string `yaml:"role"`
	Quantity       int    `yaml:"quantity"`
	HoursPerWeek   int    `yaml:"hoursPerWeek"`
	Qualifications string `yaml:"qualifications"`
}

type MetricTemplate struct {
	Indicator   string  `yaml:"indicator"`
	Target      float64 `yaml:"target"`
	Measurement string  `yaml:"measurement"`
	Frequency   string  `yaml:"frequency"`
}

type RiskTemplate struct {
	Risk        string `yaml:"risk"`
	Probability string `yaml:"probability"`
	Impact      string `yaml:"impact"`
	Mitigation  string `yaml:"mitigation"`
}

type ResourcesTemplate struct {
	Infrastructure []string `yaml:"infrastructure"`
	Technology     []string `yaml:"technology"`
	Partnerships   []string `yaml:"partnerships"`
}

type SustainabilityTemplate struct {
	Financial     []string `yaml:"financial"`
	Institutional []string `yaml:"institutional"`
	Social        []string `yaml:"social"`
}

// Catalog holds the domain templates the Synthesizer draws from.
// Operators can replace any part of it through a yaml file; entries are
// data, not code, so editing them needs no rebuild.
type Catalog struct {
	Methodologies map[string]MethodologyTemplate `yaml:"methodologies"`

	// Durations maps project type to total months. Division into
	// phases happens in the Synthesizer.
	Durations       map[string]int `yaml:"durations"`
	DefaultDuration int            `yaml:"defaultDuration"`

	PhaseNames []string `yaml:"phaseNames"`

	DefaultBudget float64 `yaml:"defaultBudget"`

	DefaultSpecificObjectives []string `yaml:"defaultSpecificObjectives"`
	DefaultGeneralObjective   string   `yaml:"defaultGeneralObjective"`

	Team            []TeamTemplate         `yaml:"team"`
	Resources       ResourcesTemplate      `yaml:"resources"`
	ExpectedResults []string               `yaml:"expectedResults"`
	Metrics         []MetricTemplate       `yaml:"metrics"`
	Sustainability  SustainabilityTemplate `yaml:"sustainability"`
	Risks           []RiskTemplate         `yaml:"risks"`
}

// MethodologyFor returns the methodology template of projectType,
// falling back to the development template for unknown types.
func (c Catalog) MethodologyFor(projectType domain.ProjectType) MethodologyTemplate {
	if m, ok := c.Methodologies[projectType.String()]; ok {
		return m
	}
	return c.Methodologies[domain.ProjectDevelopment.String()]
}

// DurationFor returns the total duration in months of projectType.
func (c Catalog) DurationFor(projectType domain.ProjectType) int {
	if d, ok := c.Durations[projectType.String()]; ok {
		return d
	}
	return c.DefaultDuration
}

// LoadCatalog reads a Catalog from a yaml file. Sections absent from
// the file keep their built-in default.
func LoadCatalog(path string) (Catalog, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, xe.Wrap(err)
	}

	c := DefaultCatalog()
	if err := yaml.Unmarshal(buf, &c); err != nil {
		return Catalog{}, xe.Wrap(err)
	}
	return c, nil
}

// DefaultCatalog returns the built-in templates.
func DefaultCatalog() Catalog {
	return Catalog{
		Methodologies: map[string]MethodologyTemplate{
			"research": {
				Approach: "Pesquisa aplicada com abordagem quali-quantitativa",
				Phases: []string{
					"Revisão sistemática da literatura",
					"Definição de protocolo de pesquisa",
					"Coleta de dados primários e secundários",
					"Análise estatística e interpretação",
					"Validação dos resultados",
					"Disseminação do conhecimento",
				},
				Techniques: []string{
					"Análise bibliométrica",
					"Surveys estruturados",
					"Entrevistas semi-estruturadas",
					"Análise de conteúdo",
					"Modelagem estatística",
				},
			},
			"development": {
				Approach: "Desenvolvimento iterativo e incremental",
				Phases: []string{
					"Análise de requisitos",
					"Design e prototipação",
					"Desenvolvimento e implementação",
					"Testes e validação",
					"Implantação piloto",
					"Avaliação e ajustes",
				},
				Techniques: []string{
					"Design thinking",
					"Prototipação rápida",
					"Testes de usabilidade",
					"Metodologia ágil",
					"Validação com usuários",
				},
			},
			"training": {
				Approach: "Formação teórico-prática com metodologias ativas",
				Phases: []string{
					"Diagnóstico de necessidades",
					"Desenvolvimento curricular",
					"Produção de material didático",
					"Execução dos módulos",
					"Avaliação de aprendizagem",
					"Certificação e acompanhamento",
				},
				Techniques: []string{
					"Aprendizagem baseada em problemas",
					"Estudos de caso",
					"Simulações práticas",
					"Mentoria e coaching",
					"Avaliação por competências",
				},
			},
		},
		Durations: map[string]int{
			"research":    24,
			"development": 18,
			"training":    12,
		},
		DefaultDuration: 18,
		PhaseNames: []string{
			"Planejamento e Preparação",
			"Execução - Fase 1",
			"Execução - Fase 2",
			"Validação e Testes",
			"Implementação Final",
			"Avaliação e Encerramento",
		},
		DefaultBudget: 500_000,
		DefaultSpecificObjectives: []string{
			"Desenvolver metodologia inovadora para atendimento",
			"Capacitar profissionais na área de atuação",
			"Estabelecer indicadores de impacto e qualidade",
			"Garantir sustentabilidade das ações propostas",
		},
		DefaultGeneralObjective: "Promover a inclusão e qualidade de vida de pessoas com deficiência",
		Team: []TeamTemplate{
			{
				Role: "Coordenador Geral", Quantity: 1, HoursPerWeek: 20,
				Qualifications: "Doutorado na área, experiência em gestão de projetos",
			},
			{
				Role: "Pesquisador Senior", Quantity: 2, HoursPerWeek: 30,
				Qualifications: "Mestrado na área, publicações relevantes",
			},
			{
				Role: "Pesquisador Junior", Quantity: 3, HoursPerWeek: 40,
				Qualifications: "Graduação na área, experiência em pesquisa",
			},
			{
				Role: "Assistente de Pesquisa", Quantity: 2, HoursPerWeek: 20,
				Qualifications: "Estudante de graduação ou pós-graduação",
			},
			{
				Role: "Especialista em Acessibilidade", Quantity: 1, HoursPerWeek: 15,
				Qualifications: "Certificação em acessibilidade, experiência prática",
			},
		},
		Resources: ResourcesTemplate{
			Infrastructure: []string{
				"Espaço físico adequado e acessível",
				"Laboratório equipado",
				"Sala de reuniões",
				"Ambiente de testes",
			},
			Technology: []string{
				"Computadores e notebooks",
				"Software especializado",
				"Plataforma de gestão de projetos",
				"Ferramentas de análise de dados",
			},
			Partnerships: []string{
				"Instituições de ensino",
				"Organizações de pessoas com deficiência",
				"Órgãos governamentais",
				"Empresas parceiras",
			},
		},
		ExpectedResults: []string{
			"Desenvolvimento de solução inovadora validada pelos usuários",
			"Publicação de artigos científicos em periódicos qualificados",
			"Formação de recursos humanos especializados",
			"Criação de protocolo replicável para outras instituições",
			"Melhoria mensurável na qualidade de vida dos beneficiários",
			"Estabelecimento de rede de colaboração permanente",
		},
		Metrics: []MetricTemplate{
			{
				Indicator: "Número de beneficiários atendidos", Target: 1000,
				Measurement: "Registro de atendimentos", Frequency: "Mensal",
			},
			{
				Indicator: "Satisfação dos usuários", Target: 85,
				Measurement: "Pesquisa de satisfação (%)", Frequency: "Trimestral",
			},
			{
				Indicator: "Publicações científicas", Target: 5,
				Measurement: "Artigos publicados", Frequency: "Semestral",
			},
			{
				Indicator: "Profissionais capacitados", Target: 50,
				Measurement: "Certificados emitidos", Frequency: "Trimestral",
			},
			{
				Indicator: "Taxa de adesão ao protocolo", Target: 80,
				Measurement: "Percentual de adesão", Frequency: "Mensal",
			},
		},
		Sustainability: SustainabilityTemplate{
			Financial: []string{
				"Busca de financiamento continuado",
				"Parcerias público-privadas",
				"Geração de receita própria",
				"Captação de recursos via editais",
			},
			Institutional: []string{
				"Integração com políticas públicas",
				"Institucionalização das práticas",
				"Formação de rede de apoio",
				"Documentação e transferência de conhecimento",
			},
			Social: []string{
				"Engajamento da comunidade",
				"Formação de multiplicadores",
				"Advocacy e conscientização",
				"Empoderamento dos beneficiários",
			},
		},
		Risks: []RiskTemplate{
			{
				Risk:        "Dificuldade de recrutamento de participantes",
				Probability: "Média", Impact: "Alto",
				Mitigation: "Parcerias com organizações e divulgação ampla",
			},
			{
				Risk:        "Atrasos no cronograma",
				Probability: "Média", Impact: "Médio",
				Mitigation: "Planejamento com margens de segurança e monitoramento contínuo",
			},
			{
				Risk:        "Limitações orçamentárias",
				Probability: "Baixa", Impact: "Alto",
				Mitigation: "Gestão financeira rigorosa e busca de recursos complementares",
			},
			{
				Risk:        "Resistência à mudança",
				Probability: "Média", Impact: "Médio",
				Mitigation: "Programa de sensibilização e capacitação gradual",
			},
			{
				Risk:        "Questões éticas e regulatórias",
				Probability: "Baixa", Impact: "Alto",
				Mitigation: "Aprovação em comitê de ética e compliance regulatório",
			},
		},
	}
}
