package protocolo

import "time"

// janela de turno em minutos do dia
type janela struct {
	inicio int
	fim    int
}

var janelasTurno = map[string]janela{
	"M1": {6 * 60, 14 * 60},       // Manhã: 06:00 - 14:00
	"T2": {14 * 60, 22 * 60},      // Tarde: 14:00 - 22:00
	"N1": {22 * 60, 6 * 60},       // Noite: 22:00 - 06:00, cruza a meia-noite
	"A":  {0, 23*60 + 59},         // Administrativo: dia inteiro
}

// VenceNoTurno informa se um prazo cai dentro do turno corrente.
// Turnos desconhecidos nunca vencem. Para o turno noturno o fim da
// janela é o término da instância corrente do turno: 06:00 do dia
// seguinte quando ainda estamos antes da meia-noite, 06:00 do próprio
// dia na madrugada.
func VenceNoTurno(prazo time.Time, turno string, agora time.Time) bool {
	j, ok := janelasTurno[turno]
	if !ok {
		return false
	}

	minutos := agora.Hour()*60 + agora.Minute()
	if j.inicio > j.fim {
		var fimTurno time.Time
		switch {
		case minutos >= j.inicio:
			fimTurno = fimDeJanela(agora.AddDate(0, 0, 1), j.fim)
		case minutos <= j.fim:
			fimTurno = fimDeJanela(agora, j.fim)
		default:
			return false
		}
		return !prazo.After(fimTurno)
	}

	if minutos < j.inicio || minutos > j.fim {
		return false
	}
	return !prazo.After(fimDeJanela(agora, j.fim))
}

func fimDeJanela(dia time.Time, fim int) time.Time {
	return time.Date(dia.Year(), dia.Month(), dia.Day(), fim/60, fim%60, 0, 0, dia.Location())
}

// VenceNoTurno aplica a checagem de janela ao prazo do protocolo
func (p *Protocolo) VenceNoTurno(turno string, agora time.Time) bool {
	return VenceNoTurno(p.PrazoVencimento, turno, agora)
}
