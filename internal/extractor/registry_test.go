package extractor_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/goextrato/internal/domain"
	"github.com/iho/goextrato/internal/extractor"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func requireAmounts(t *testing.T, txs []domain.RawTransaction, want ...string) {
	t.Helper()
	require.Len(t, txs, len(want))
	for i, w := range want {
		assert.True(t, txs[i].Amount.Equal(dec(w)), "row %d: got %s want %s", i, txs[i].Amount, w)
	}
}

func TestNubankInvoiceCSV(t *testing.T) {
	t.Parallel()

	csv := "date,title,amount\n" +
		"2024-03-05,Ifood,42.90\n" +
		"2024-03-06,Loja - Parcela 2/3,100.00\n" +
		"2024-03-07,Pagamento recebido,-500.00\n" +
		"2024-03-08,Zero,0.00\n" +
		"bad,Row,1.00\n"

	doc := extractor.NewDocument("Nubank_2024-04-10.csv", []byte(csv), "")
	res, err := newRegistry(extractor.Options{}).Extract(context.Background(), doc, extractor.Expectation{})
	require.NoError(t, err)

	assert.Equal(t, extractor.Key{Issuer: "nubank", DocumentType: domain.DocumentInvoice, Format: "csv"}, res.Key)
	requireAmounts(t, res.Transactions, "-42.90", "-100.00", "500.00")
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, 6, res.Skipped[0].Line)

	tx := res.Transactions[1]
	assert.Equal(t, "Loja - Parcela 2/3", tx.Establishment)
	assert.Equal(t, domain.Period{Year: 2024, Month: 4}, tx.ClosingPeriod)
	assert.Equal(t, "nubank", tx.Issuer)
	assert.Equal(t, domain.DocumentInvoice, tx.DocumentType)
	assert.Equal(t, "Nubank_2024-04-10.csv", tx.SourceFile)
	assert.Equal(t, fixedNow, tx.IngestedAt)
	assert.True(t, tx.HasCard())
	assert.Equal(t, domain.BalanceNotApplicable, res.Balance.Status)
}

func TestNubankStatementCSV(t *testing.T) {
	t.Parallel()

	csv := "Data,Valor,Identificador,Descrição\n" +
		"05/03/2024,-42.90,abc,Compra no débito - Padaria\n" +
		"06/03/2024,1500.00,def,\"Transferência recebida pelo Pix - FULANO, BANCO\"\n"

	doc := extractor.NewDocument("NU_extrato.csv", []byte(csv), "")
	res, err := newRegistry(extractor.Options{}).Extract(context.Background(), doc, extractor.Expectation{Issuer: "nubank"})
	require.NoError(t, err)

	assert.Equal(t, domain.DocumentStatement, res.Key.DocumentType)
	requireAmounts(t, res.Transactions, "-42.90", "1500")
	assert.Equal(t, "Transferência recebida pelo Pix - FULANO, BANCO", res.Transactions[1].Establishment)
	assert.False(t, res.Transactions[0].HasCard())
}

func TestWindows1252Text(t *testing.T) {
	t.Parallel()

	// "Descrição" in Windows-1252.
	csv := []byte("Data,Valor,Identificador,Descri\xe7\xe3o\n05/03/2024,-1.00,x,Caf\xe9\n")

	res, err := newRegistry(extractor.Options{}).Extract(context.Background(),
		extractor.NewDocument("nu.csv", csv, ""), extractor.Expectation{})
	require.NoError(t, err)
	require.Len(t, res.Transactions, 1)
	assert.Equal(t, "Café", res.Transactions[0].Establishment)
}

func TestBBStatementExport(t *testing.T) {
	t.Parallel()

	text := strings.Join([]string{
		"Banco do Brasil - Extrato de Conta Corrente",
		"Data       Histórico                      Valor",
		"01/03/2024 Saldo Anterior                 1.000,00 C",
		"04/03/2024 Pix - Enviado FULANO           150,00 D",
		"05/03/2024 Pix - Recebido CICLANO          50,00 C",
		"05/03/2024 Tarifa sem valor",
		"31/03/2024 S A L D O                        900,00 C",
	}, "\n")

	res, err := newRegistry(extractor.Options{}).Extract(context.Background(),
		extractor.NewDocument("extrato.txt", []byte(text), ""), extractor.Expectation{})
	require.NoError(t, err)

	assert.Equal(t, "bb", res.Key.Issuer)
	requireAmounts(t, res.Transactions, "-150", "50")
	assert.Equal(t, "Pix - Enviado FULANO", res.Transactions[0].Establishment)
	require.Len(t, res.Skipped, 1)
	assert.True(t, res.Balance.Valid())
	assert.True(t, res.Balance.Opening.Equal(dec("1000")))
}

const ofxStatement = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240331120000
<LANGUAGE>POR
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1001
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>BRL
<BANKACCTFROM>
<BANKID>0341
<ACCTID>12345-6
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240301
<DTEND>20240331
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240305
<TRNAMT>-42.90
<FITID>1
<MEMO>PADARIA CENTRAL
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20240306
<TRNAMT>1500.00
<FITID>2
<NAME>SALARIO
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>2457.10
<DTASOF>20240331
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>
`

func TestOFXStatement(t *testing.T) {
	t.Parallel()

	res, err := newRegistry(extractor.Options{}).Extract(context.Background(),
		extractor.NewDocument("extrato.ofx", []byte(ofxStatement), ""), extractor.Expectation{DocumentType: domain.DocumentStatement})
	require.NoError(t, err)

	assert.Equal(t, "itau", res.Key.Issuer)
	assert.Equal(t, domain.DocumentStatement, res.Key.DocumentType)
	requireAmounts(t, res.Transactions, "-42.90", "1500")
	assert.Equal(t, "PADARIA CENTRAL", res.Transactions[0].Establishment)
	assert.Equal(t, "SALARIO", res.Transactions[1].Establishment)
	assert.Equal(t, 5, res.Transactions[0].Date.Day())
	assert.Equal(t, domain.BalanceNotApplicable, res.Balance.Status)
	assert.True(t, res.Balance.Closing.Equal(dec("2457.10")))
}

func TestOFXWrongDocumentType(t *testing.T) {
	t.Parallel()

	_, err := newRegistry(extractor.Options{}).Extract(context.Background(),
		extractor.NewDocument("extrato.ofx", []byte(ofxStatement), ""), extractor.Expectation{DocumentType: domain.DocumentInvoice})
	assert.ErrorIs(t, err, domain.ErrWrongDocumentType)
}

func TestItauStatementSpreadsheet(t *testing.T) {
	t.Parallel()

	content := workbook(t, [][]interface{}{
		{"Extrato Conta Corrente"},
		{"Agência: 1234  Conta: 56789-0"},
		{},
		{"data", "lançamento", "ag./origem", "valor (R$)", "saldos (R$)"},
		{"28/02/2024", "PIX RECEBIDO ANTES", "", "10,00", ""},
		{"29/02/2024", "SALDO ANTERIOR", "", "", "100,00"},
		{"01/03/2024", "SUPERMERCADO", "", "-30,00", ""},
		{"02/03/2024", "FARMACIA", "", "-20,00", ""},
		{"03/03/2024", "ESTORNO", "", "5,00", ""},
		{"03/03/2024", "SALDO TOTAL DISPONÍVEL DIA", "", "", "55,00"},
		{"lançamentos futuros"},
		{"10/03/2024", "AGENDADO", "", "-99,00", ""},
	}, "")

	res, err := newRegistry(extractor.Options{}).Extract(context.Background(),
		extractor.NewDocument("extrato.xlsx", content, ""), extractor.Expectation{Issuer: "itau", DocumentType: domain.DocumentStatement})
	require.NoError(t, err)

	requireAmounts(t, res.Transactions, "10", "-30", "-20", "5")
	assert.True(t, res.Balance.Valid())
	assert.True(t, res.Balance.TransactionsSum.Equal(dec("-45")))
	assert.True(t, res.Balance.Computed.Equal(dec("55")))
}

func itauInvoiceRows() [][]interface{} {
	return [][]interface{}{
		{"Fatura Itaú Click"},
		{"Vencimento: 10/01/2024"},
		{"JOAO S SILVA - final 1234"},
		{"data", "lançamento", "valor"},
		{"28/12", "LOJA NATAL 02/03", "100,00"},
		{"05/01", "PADARIA", "20,50"},
		{"MARIA S SILVA - final 9876"},
		{"06/01", "UBER", "15,00"},
		{"Total da fatura", "", "135,50"},
	}
}

func TestItauInvoiceSpreadsheet(t *testing.T) {
	t.Parallel()

	content := workbook(t, itauInvoiceRows(), "")

	res, err := newRegistry(extractor.Options{}).Extract(context.Background(),
		extractor.NewDocument("fatura.xlsx", content, ""), extractor.Expectation{})
	require.NoError(t, err)

	assert.Equal(t, extractor.Key{Issuer: "itau", DocumentType: domain.DocumentInvoice, Format: "spreadsheet"}, res.Key)
	requireAmounts(t, res.Transactions, "-100", "-20.50", "-15")

	first := res.Transactions[0]
	assert.Equal(t, 2023, first.Date.Year())
	assert.Equal(t, "1234", first.CardLast4)
	assert.Equal(t, "JOAO S SILVA", first.CardName)
	assert.Equal(t, domain.Period{Year: 2024, Month: 1}, first.ClosingPeriod)
	assert.Equal(t, "9876", res.Transactions[2].CardLast4)

	assert.True(t, res.Balance.Valid())
	assert.True(t, res.Balance.Closing.Equal(dec("-135.50")))
}

func TestWrongDocumentTypeForRecognizedIssuer(t *testing.T) {
	t.Parallel()

	content := workbook(t, itauInvoiceRows(), "")

	_, err := newRegistry(extractor.Options{}).Extract(context.Background(),
		extractor.NewDocument("fatura.xlsx", content, ""), extractor.Expectation{Issuer: "itau", DocumentType: domain.DocumentStatement})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrWrongDocumentType))
	assert.False(t, errors.Is(err, domain.ErrFormatNotRecognized))
}

func TestFormatNotRecognized(t *testing.T) {
	t.Parallel()

	_, err := newRegistry(extractor.Options{}).Extract(context.Background(),
		extractor.NewDocument("notes.txt", []byte("hello world\nnothing to see"), ""), extractor.Expectation{})
	assert.ErrorIs(t, err, domain.ErrFormatNotRecognized)
}

func TestEncryptedWorkbook(t *testing.T) {
	t.Parallel()

	content := workbook(t, [][]interface{}{
		{"data", "lançamento", "valor", "saldo"},
		{"01/03/2024", "SALDO ANTERIOR", "", "10,00"},
		{"02/03/2024", "PADARIA", "-4,00", ""},
		{"02/03/2024", "SALDO DO DIA", "", "6,00"},
	}, "s3cret")

	registry := newRegistry(extractor.Options{})

	_, err := registry.Extract(context.Background(), extractor.NewDocument("extrato.xlsx", content, ""), extractor.Expectation{})
	assert.ErrorIs(t, err, domain.ErrPasswordRequired)

	_, err = registry.Extract(context.Background(), extractor.NewDocument("extrato.xlsx", content, "wrong"), extractor.Expectation{})
	assert.ErrorIs(t, err, domain.ErrWrongPassword)

	res, err := registry.Extract(context.Background(), extractor.NewDocument("extrato.xlsx", content, "s3cret"), extractor.Expectation{})
	require.NoError(t, err)
	requireAmounts(t, res.Transactions, "-4")
	assert.True(t, res.Balance.Valid())
}

func TestGenericStatement(t *testing.T) {
	t.Parallel()

	text := strings.Join([]string{
		"Extrato mensal",
		"Agência 0001 Conta corrente 12345",
		"Lançamentos do período",
		"01/03/2024 Saldo anterior 100,00",
		"02/03/2024 Supermercado -30,00",
		"03/03/2024 Farmácia -20,00",
		"04/03/2024 Estorno 5,00",
		"05/03/2024 Saldo 55,00",
	}, "\n")

	res, err := newRegistry(extractor.Options{}).Extract(context.Background(),
		extractor.NewDocument("extrato.txt", []byte(text), ""), extractor.Expectation{})
	require.NoError(t, err)

	assert.Equal(t, extractor.Key{Issuer: "generic", DocumentType: domain.DocumentStatement, Format: "text"}, res.Key)
	requireAmounts(t, res.Transactions, "-30", "-20", "5")
	assert.True(t, res.Balance.Valid())
	assert.True(t, res.Balance.Difference.IsZero())
}

func TestGenericInvoiceWithTwoColumns(t *testing.T) {
	t.Parallel()

	text := strings.Join([]string{
		"Fatura do cartão",
		"Vencimento: 10/04/2024",
		"Limite disponível R$ 1.000,00",
		"05/03 PADARIA 10,00 07/03 UBER TRIP 22,50",
		"28/12 LOJA ANTIGA 5,00",
		"Total da fatura R$ 37,50",
	}, "\n")

	res, err := newRegistry(extractor.Options{}).Extract(context.Background(),
		extractor.NewDocument("fatura.txt", []byte(text), ""), extractor.Expectation{DocumentType: domain.DocumentInvoice})
	require.NoError(t, err)

	requireAmounts(t, res.Transactions, "-10", "-22.50", "-5")
	assert.Equal(t, "UBER TRIP", res.Transactions[1].Establishment)
	assert.Equal(t, 2023, res.Transactions[2].Date.Year())
	assert.True(t, res.Balance.Valid())
}

func TestOCRAdapter(t *testing.T) {
	t.Parallel()

	var page []extractor.Box
	page = append(page, words(10, "Fatura", "Itaú")...)
	page = append(page, words(30, "Vencimento", "10/04/2024")...)
	page = append(page, words(60, "05/03", "PADARIA", "10,00", "07/03", "UBER", "22,50")...)
	page = append(page, words(90, "Total", "da", "fatura", "32,50")...)

	engine := &stubOCR{pages: []extractor.OCRPage{{Number: 1, Words: page}}}

	res, err := newRegistry(extractor.Options{OCR: engine}).Extract(context.Background(),
		extractor.NewDocument("scan.pdf", blankPDF(), ""), extractor.Expectation{})
	require.NoError(t, err)

	assert.Equal(t, 1, engine.calls)
	assert.Equal(t, extractor.Key{Issuer: "itau", DocumentType: domain.DocumentInvoice, Format: "ocr"}, res.Key)
	requireAmounts(t, res.Transactions, "-10", "-22.50")
	assert.Equal(t, "itau", res.Transactions[0].CardName)
	assert.True(t, res.Balance.Valid())
}

func TestScannedPDFWithoutOCR(t *testing.T) {
	t.Parallel()

	_, err := newRegistry(extractor.Options{}).Extract(context.Background(),
		extractor.NewDocument("scan.pdf", blankPDF(), ""), extractor.Expectation{})
	assert.ErrorIs(t, err, domain.ErrFormatNotRecognized)
}

func TestOCRFailureIsFatal(t *testing.T) {
	t.Parallel()

	engine := &stubOCR{err: errors.New("ocr backend down")}
	_, err := newRegistry(extractor.Options{OCR: engine}).Extract(context.Background(),
		extractor.NewDocument("scan.pdf", blankPDF(), ""), extractor.Expectation{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ocr backend down")
}

func TestRegistryKeysOrder(t *testing.T) {
	t.Parallel()

	keys := newRegistry(extractor.Options{}).Keys()
	require.NotEmpty(t, keys)
	assert.Equal(t, "nubank/invoice/csv", keys[0].String())
	assert.Equal(t, "generic/*/text", keys[len(keys)-1].String())
}
