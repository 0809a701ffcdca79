package auth

// Perfis reconhecidos pelo sistema. Enumeração fechada: qualquer outro
// nome de perfil não recebe permissão alguma.
const (
	PerfilAdministrador = "Administrador"
	PerfilSupervisor    = "Supervisor"
	PerfilCCO           = "CCO"
	PerfilCampo         = "Funcionário Campo"
)

type Permissao string

const (
	PermGerenciarUsuarios    Permissao = "gerenciar_usuarios"
	PermEditarDiario         Permissao = "editar_diario"
	PermVisualizarDiarios    Permissao = "visualizar_diarios"
	PermAprovarDiarios       Permissao = "aprovar_diarios"
	PermGerarRelatorios      Permissao = "gerar_relatorios"
	PermVisualizarDashboards Permissao = "visualizar_dashboards"
	PermCriarReportFalhas    Permissao = "criar_report_falhas"
	PermControleCCO          Permissao = "controle_cco"
)

var permissoesPorPerfil = map[string][]Permissao{
	PerfilCampo: {
		PermEditarDiario,
		PermVisualizarDiarios,
	},
	PerfilSupervisor: {
		PermEditarDiario,
		PermVisualizarDiarios,
		PermAprovarDiarios,
		PermGerarRelatorios,
		PermVisualizarDashboards,
		PermCriarReportFalhas,
	},
	PerfilCCO: {
		PermVisualizarDiarios,
		PermGerarRelatorios,
		PermVisualizarDashboards,
		PermCriarReportFalhas,
		PermControleCCO,
	},
}

// PerfilTemPermissao resolve o conjunto de capacidades do perfil.
// Administrador tem todas as permissões.
func PerfilTemPermissao(perfil string, p Permissao) bool {
	if perfil == PerfilAdministrador {
		return true
	}
	for _, tem := range permissoesPorPerfil[perfil] {
		if tem == p {
			return true
		}
	}
	return false
}
