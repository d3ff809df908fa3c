package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/reusee/bfem/program"
	"github.com/samber/lo"
)

type Options struct {
	// Aliases enables {name} blocks.
	Aliases bool
	// StrictWhitespace rejects whitespace instead of skipping it.
	StrictWhitespace bool
}

func DefaultOptions() Options {
	return Options{
		Aliases: true,
	}
}

type openLoop struct {
	start int
	body  []program.Instruction
}

type Parser struct {
	src     string
	pos     int
	options Options
	stack   []openLoop
	names   []string
}

func New(src string, options Options) *Parser {
	return &Parser{
		src:     src,
		options: options,
	}
}

func Parse(src string, options Options) (program.Program, error) {
	return New(src, options).Parse()
}

func (p *Parser) emit(inst program.Instruction) {
	top := &p.stack[len(p.stack)-1]
	top.body = append(top.body, inst)
}

func (p *Parser) Parse() (ret program.Program, err error) {
	p.pos = 0
	p.names = p.names[:0]
	p.stack = append(p.stack[:0], openLoop{start: -1})

	for p.pos < len(p.src) {
		r, width := utf8.DecodeRuneInString(p.src[p.pos:])
		span := program.Span{
			Offset: p.pos,
			Length: width,
		}

		switch r {

		case '+':
			p.emit(program.Add(1, span))
		case '-':
			p.emit(program.Subtract(1, span))
		case '>':
			p.emit(program.MoveRight(1, span))
		case '<':
			p.emit(program.MoveLeft(1, span))
		case '.':
			p.emit(program.Output(span))
		case ',':
			p.emit(program.Input(span))

		case '[':
			p.stack = append(p.stack, openLoop{start: p.pos})

		case ']':
			if len(p.stack) == 1 {
				return ret, &UnrecognizedTokenError{Token: r, Span: span}
			}
			loop := p.stack[len(p.stack)-1]
			p.stack = p.stack[:len(p.stack)-1]
			p.emit(program.Loop(loop.body, program.Span{
				Offset: loop.start,
				Length: span.End() - loop.start,
			}))

		case '{':
			if !p.options.Aliases {
				return ret, &UnrecognizedTokenError{Token: r, Span: span}
			}
			nameStart := p.pos + width
			end := strings.IndexByte(p.src[nameStart:], '}')
			if end < 0 {
				return ret, &UnterminatedAliasError{Span: span}
			}
			name := p.src[nameStart : nameStart+end]
			p.names = append(p.names, name)
			p.emit(program.Goto(name, program.Span{
				Offset: p.pos,
				Length: end + 2,
			}))
			p.pos = nameStart + end + 1
			continue

		default:
			if unicode.IsSpace(r) && !p.options.StrictWhitespace {
				break
			}
			return ret, &UnrecognizedTokenError{Token: r, Span: span}

		}

		p.pos += width
	}

	if len(p.stack) > 1 {
		loop := p.stack[len(p.stack)-1]
		return ret, &UnbalancedLoopError{
			Span: program.Span{
				Offset: loop.start,
				Length: 1,
			},
		}
	}

	ret.Instructions = p.stack[0].body
	if len(p.names) > 0 {
		ret.Aliases = lo.Uniq(p.names)
	}
	return ret, nil
}
