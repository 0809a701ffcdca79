package diario

import (
	"fmt"
	"time"
)

// request DTOs
type criarPlanejamentoRequest struct {
	Data                       string `json:"data"`
	Turno                      string `json:"turno"`
	Equipe                     string `json:"equipe"`
	Colaborador1               string `json:"colaborador1"`
	Colaborador2               string `json:"colaborador2"`
	Veiculo                    string `json:"veiculo"`
	Regiao                     string `json:"regiao"`
	ProtocolosNaoEnviadosPrazo int    `json:"protocolos_nao_enviados_prazo"`
	ProtocolosVencemNoTurno    int    `json:"protocolos_vencem_no_turno"`
}

type horariosRequest struct {
	HorarioSaidaBase           *string `json:"horario_saida_base"`
	HorarioPrimeiroAtendimento *string `json:"horario_primeiro_atendimento"`
	HorarioInicioIntervalo     *string `json:"horario_inicio_intervalo"`
	HorarioFimIntervalo        *string `json:"horario_fim_intervalo"`
	HorarioUltimoAtendimento   *string `json:"horario_ultimo_atendimento"`
	HorarioChegadaBase         *string `json:"horario_chegada_base"`
}

type triagemRequest struct {
	ProtocolosPrazo            *int    `json:"protocolos_prazo"`
	ProtocolosVencidos         *int    `json:"protocolos_vencidos"`
	TotalProtocolos            *int    `json:"total_protocolos"`
	ProtocolosNaoEnviadosPrazo *int    `json:"protocolos_nao_enviados_prazo"`
	ProtocolosVencemNoTurno    *int    `json:"protocolos_vencem_no_turno"`
	ComentarioTriagem          *string `json:"comentario_triagem"`
}

type execucaoRequest struct {
	Atendido           *int    `json:"atendido"`
	Impossibilidade    *int    `json:"impossibilidade"`
	NaoExecutado       *int    `json:"nao_executado"`
	ComentarioExecucao *string `json:"comentario_execucao"`
}

type supervisaoRequest struct {
	ComentarioSupervisor string `json:"comentario_supervisor"`
	SentimentoSupervisao string `json:"sentimento_supervisao"`
	PontosAtencao        *bool  `json:"pontos_atencao"`
}

// validarData aceita apenas datas ISO YYYY-MM-DD
func validarData(data string) error {
	if _, err := time.Parse("2006-01-02", data); err != nil {
		return fmt.Errorf("data inválida, use YYYY-MM-DD: %q", data)
	}
	return nil
}

// validarHorario aceita apenas horários HH:MM:SS
func validarHorario(horario string) error {
	if _, err := time.Parse("15:04:05", horario); err != nil {
		return fmt.Errorf("horário inválido, use HH:MM:SS: %q", horario)
	}
	return nil
}

// validarOrdemHorarios garante saída <= 1º atendimento <= início do
// intervalo <= fim do intervalo <= último atendimento <= chegada,
// ignorando os horários ausentes
func validarOrdemHorarios(d *DiarioPlanejamento) error {
	sequencia := []struct {
		nome  string
		valor string
	}{
		{"horario_saida_base", d.HorarioSaidaBase},
		{"horario_primeiro_atendimento", d.HorarioPrimeiroAtendimento},
		{"horario_inicio_intervalo", d.HorarioInicioIntervalo},
		{"horario_fim_intervalo", d.HorarioFimIntervalo},
		{"horario_ultimo_atendimento", d.HorarioUltimoAtendimento},
		{"horario_chegada_base", d.HorarioChegadaBase},
	}

	anteriorNome, anteriorValor := "", ""
	for _, h := range sequencia {
		if h.valor == "" {
			continue
		}
		if err := validarHorario(h.valor); err != nil {
			return err
		}
		if anteriorValor != "" && h.valor < anteriorValor {
			return fmt.Errorf("%s não pode ser anterior a %s", h.nome, anteriorNome)
		}
		anteriorNome, anteriorValor = h.nome, h.valor
	}
	return nil
}
