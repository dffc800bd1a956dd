/*
NAME
  main.go

DESCRIPTION
  adpcmtool is a command-line program for encoding, decoding and
  residual-analysing IMA-ADPCM/WAVE files, merging exp/adpcm's two
  single-purpose mains into one three-mode dispatcher.

AUTHOR
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package main implements adpcmtool, a WAVE/IMA-ADPCM encode, decode
// and residual-analysis utility.
package main

import (
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"

	"github.com/ausocean/waveadpcm/codec/adpcm"
	"github.com/ausocean/waveadpcm/codec/codecutil"
	"github.com/ausocean/waveadpcm/codec/pcm"
	"github.com/ausocean/waveadpcm/codec/wav"
	"gonum.org/v1/gonum/stat"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logPath      = "adpcmtool.log"
	logMaxSizeMB = 10
	logMaxBackup = 3
	logMaxAgeDay = 28
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage: adpcmtool (-e | -d | -r) [-block size] [-verbose] in.wav out.wav")
	fmt.Fprintln(os.Stderr, "  -e  encode a linear PCM WAVE file to IMA-ADPCM")
	fmt.Fprintln(os.Stderr, "  -d  decode an IMA-ADPCM WAVE file to linear PCM")
	fmt.Fprintln(os.Stderr, "  -r  encode then decode, writing the residual and printing statistics")
}

func main() {
	var doEncode, doDecode, doResidual, verbose bool
	var blockSize int
	flag.BoolVar(&doEncode, "e", false, "encode PCM to ADPCM")
	flag.BoolVar(&doDecode, "d", false, "decode ADPCM to PCM")
	flag.BoolVar(&doResidual, "r", false, "compute and report the encode/decode residual")
	flag.IntVar(&blockSize, "block", adpcm.DefaultBlockSize, "ADPCM block size in bytes")
	flag.BoolVar(&verbose, "verbose", false, "tee diagnostics to a rotating log file")
	flag.Usage = usage
	flag.Parse()

	modes := 0
	for _, b := range []bool{doEncode, doDecode, doResidual} {
		if b {
			modes++
		}
	}
	args := flag.Args()
	if modes != 1 || len(args) != 2 {
		usage()
		os.Exit(1)
	}
	setupLogging(verbose)

	inPath, outPath := args[0], args[1]
	var err error
	switch {
	case doEncode:
		err = runEncode(inPath, outPath, blockSize)
	case doDecode:
		err = runDecode(inPath, outPath)
	case doResidual:
		err = runResidual(inPath, outPath, blockSize)
	}
	if err != nil {
		log.Printf("adpcmtool: %v", err)
		os.Exit(1)
	}
}

// setupLogging directs diagnostics to stderr, additionally teeing them
// to a rotating log file when verbose is set.
func setupLogging(verbose bool) {
	log.SetFlags(0)
	if !verbose {
		log.SetOutput(os.Stderr)
		return
	}
	fileLog := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    logMaxSizeMB,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAgeDay,
	}
	log.SetOutput(io.MultiWriter(os.Stderr, fileLog))
}

// readPCMFile parses a linear PCM WAVE file and returns one int16 sample
// slice per channel.
func readPCMFile(path string) (wav.PCMHeader, [][]int16, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return wav.PCMHeader{}, nil, err
	}
	header, err := wav.ParsePCMHeader(raw)
	if err != nil {
		return header, nil, err
	}
	depth, err := pcm.DepthFromBits(header.BitsPerSample)
	if err != nil {
		return header, nil, err
	}
	canon := pcm.Unpack(depth, raw[header.HeaderSize:])

	samples := make([][]int16, header.NumChannels)
	for ch := range samples {
		samples[ch] = make([]int16, header.NumSamples)
	}
	for i := 0; i < header.NumSamples; i++ {
		for ch := 0; ch < header.NumChannels; ch++ {
			samples[ch][i] = int16(canon[i*header.NumChannels+ch] >> 16)
		}
	}
	log.Printf("read %d samples/channel, %d channel(s), %d Hz from %s", header.NumSamples, header.NumChannels, header.SampleRate, path)
	return header, samples, nil
}

// writePCMFile interleaves samples and emits them as a linear 16-bit PCM
// WAVE file.
func writePCMFile(path string, sampleRate int, samples [][]int16) error {
	numChannels := len(samples)
	numSamples := len(samples[0])
	canon := make([]int32, numSamples*numChannels)
	for i := 0; i < numSamples; i++ {
		for ch := 0; ch < numChannels; ch++ {
			canon[i*numChannels+ch] = int32(samples[ch][i]) << 16
		}
	}
	data := pcm.Pack(pcm.Bits16, canon)

	header := wav.PCMHeader{
		NumChannels:   numChannels,
		SampleRate:    sampleRate,
		BitsPerSample: 16,
		NumSamples:    numSamples,
	}
	buf := make([]byte, 44+len(data))
	n, err := wav.EmitPCMHeader(buf, header)
	if err != nil {
		return err
	}
	copy(buf[n:], data)
	if err := ioutil.WriteFile(path, buf, 0644); err != nil {
		return err
	}
	log.Printf("wrote %d samples/channel to %s", numSamples, path)
	return nil
}

func runEncode(inPath, outPath string, blockSize int) error {
	header, samples, err := readPCMFile(inPath)
	if err != nil {
		return err
	}
	log.Printf("%s -> %s", codecutil.PCM, codecutil.ADPCM)
	out, err := adpcm.EncodeWhole(samples, adpcm.EncodeParams{
		Channels:   header.NumChannels,
		SampleRate: header.SampleRate,
		BlockSize:  blockSize,
	})
	if err != nil {
		return err
	}
	if err := ioutil.WriteFile(outPath, out, 0644); err != nil {
		return err
	}
	log.Printf("encoded %d bytes to %d bytes, wrote %s", header.HeaderSize+header.NumSamples*header.NumChannels*(header.BitsPerSample/8), len(out), outPath)
	return nil
}

func runDecode(inPath, outPath string) error {
	raw, err := ioutil.ReadFile(inPath)
	if err != nil {
		return err
	}
	log.Printf("%s -> %s", codecutil.ADPCM, codecutil.PCM)
	header, samples, err := adpcm.DecodeWhole(raw)
	if err != nil {
		return err
	}
	if err := writePCMFile(outPath, header.SampleRate, samples); err != nil {
		return err
	}
	log.Printf("decoded %d bytes to %d samples/channel", len(raw), header.NumSamples)
	return nil
}

func runResidual(inPath, outPath string, blockSize int) error {
	header, samples, err := readPCMFile(inPath)
	if err != nil {
		return err
	}
	encoded, err := adpcm.EncodeWhole(samples, adpcm.EncodeParams{
		Channels:   header.NumChannels,
		SampleRate: header.SampleRate,
		BlockSize:  blockSize,
	})
	if err != nil {
		return err
	}
	_, decoded, err := adpcm.DecodeWhole(encoded)
	if err != nil {
		return err
	}

	residual := make([][]int16, header.NumChannels)
	for ch := 0; ch < header.NumChannels; ch++ {
		residual[ch] = make([]int16, header.NumSamples)
		values := make([]float64, header.NumSamples)
		for i := 0; i < header.NumSamples; i++ {
			d := int(samples[ch][i]) - int(decoded[ch][i])
			residual[ch][i] = int16(d)
			values[i] = float64(d)
		}
		mean := stat.Mean(values, nil)
		stddev := stat.StdDev(values, nil)
		maxAbs := 0.0
		for _, v := range values {
			if a := abs(v); a > maxAbs {
				maxAbs = a
			}
		}
		log.Printf("channel %d residual: mean=%.3f stddev=%.3f max_abs=%.0f", ch, mean, stddev, maxAbs)
	}

	if err := writePCMFile(outPath, header.SampleRate, residual); err != nil {
		return err
	}
	return nil
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
