// Package historico implementa o merge determinístico de documentos
// semiestruturados guardados na coluna de histórico do animal.
//
// O contrato central: um cliente que envia só a leitura de hoje nunca apaga a
// de ontem. Séries temporais (leite, CCS, CMT) são chaveadas por data de
// calendário; uma entrada para data já existente é fundida campo a campo,
// nunca duplicada.
package historico

import (
	"sort"
	"strings"
)

// chaveData nome do campo que identifica uma entrada de série.
const chaveData = "date"

// MergeSeries funde duas séries chaveadas por data. Para cada entrada nova:
// se existe entrada com a mesma data, união rasa de campos com precedência da
// entrada nova; senão, acrescenta. O resultado sai ordenado por data crescente.
func MergeSeries(antiga, nova []map[string]any) []map[string]any {
	resultado := make([]map[string]any, 0, len(antiga)+len(nova))
	indice := make(map[string]int, len(antiga))
	for _, e := range antiga {
		copia := copiaRasa(e)
		indice[normalizaData(dataDe(copia))] = len(resultado)
		resultado = append(resultado, copia)
	}
	for _, e := range nova {
		k := normalizaData(dataDe(e))
		if pos, ok := indice[k]; ok && k != "" {
			for campo, v := range e {
				resultado[pos][campo] = v
			}
			continue
		}
		copia := copiaRasa(e)
		indice[k] = len(resultado)
		resultado = append(resultado, copia)
	}
	sort.SliceStable(resultado, func(i, j int) bool {
		return normalizaData(dataDe(resultado[i])) < normalizaData(dataDe(resultado[j]))
	})
	return resultado
}

// DeepMerge une dois documentos recursivamente, com precedência da entrada:
//   - objeto x objeto: união de chaves, recursiva;
//   - arrays que parecem séries datadas dos dois lados: MergeSeries;
//   - array x array fora disso: a entrada vence por inteiro;
//   - qualquer outra combinação de tipos: a entrada vence.
func DeepMerge(base, entrada map[string]any) map[string]any {
	if base == nil {
		base = map[string]any{}
	}
	saida := make(map[string]any, len(base)+len(entrada))
	for k, v := range base {
		saida[k] = v
	}
	for k, v := range entrada {
		saida[k] = mergeValor(saida[k], v)
	}
	return saida
}

func mergeValor(base, entrada any) any {
	bm, bOk := base.(map[string]any)
	em, eOk := entrada.(map[string]any)
	if bOk && eOk {
		return DeepMerge(bm, em)
	}
	ba, bOk := comoArray(base)
	ea, eOk := comoArray(entrada)
	if bOk && eOk && serieDatada(ba) && serieDatada(ea) {
		return MergeSeries(comoSerie(ba), comoSerie(ea))
	}
	return entrada
}

// serieDatada um array é série datada quando todo elemento é um objeto com
// campo de data. Vale vacuosamente para o array vazio.
func serieDatada(a []any) bool {
	for _, e := range a {
		m, ok := e.(map[string]any)
		if !ok {
			return false
		}
		if _, tem := m[chaveData]; !tem {
			return false
		}
	}
	return true
}

func comoArray(v any) ([]any, bool) {
	switch t := v.(type) {
	case []any:
		return t, true
	case []map[string]any:
		saida := make([]any, len(t))
		for i, m := range t {
			saida[i] = m
		}
		return saida, true
	}
	return nil, false
}

func comoSerie(a []any) []map[string]any {
	saida := make([]map[string]any, 0, len(a))
	for _, e := range a {
		if m, ok := e.(map[string]any); ok {
			saida = append(saida, m)
		}
	}
	return saida
}

func dataDe(e map[string]any) string {
	s, _ := e[chaveData].(string)
	return s
}

// normalizaData traz "DD/MM/YYYY" para a forma ISO só para comparação e
// ordenação; o valor guardado na entrada não é alterado.
func normalizaData(s string) string {
	if len(s) == 10 && s[2] == '/' && s[5] == '/' {
		p := strings.SplitN(s, "/", 3)
		return p[2] + "-" + p[1] + "-" + p[0]
	}
	return s
}

func copiaRasa(m map[string]any) map[string]any {
	c := make(map[string]any, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}
